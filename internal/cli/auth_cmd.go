// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - login, logout, and whoami command handlers.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// authTimeout bounds one auth request.
const authTimeout = 30 * time.Second

// RunLogin prompts for credentials, authenticates, and stores the session.
// A username may be passed on the command line to skip the first prompt.
func RunLogin(env *Env, username string) error {
	reader := bufio.NewReader(os.Stdin)

	if username == "" {
		fmt.Print(promptStyle.Render("Username: "))
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		username = strings.TrimSpace(line)
	}
	if username == "" {
		return fmt.Errorf("username is required")
	}

	fmt.Print(promptStyle.Render("Password: "))
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()
	resp, err := env.Client.Login(ctx, username, string(pw))
	if err != nil {
		return err
	}
	if err := env.SetToken(resp.Token); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	fmt.Println(okStyle.Render("Logged in as " + username))
	return nil
}

// RunLogout tells the backend and clears the stored session. The local
// session is cleared even when the backend call fails.
func RunLogout(env *Env) error {
	if env.token != "" {
		ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
		defer cancel()
		if err := env.Client.Logout(ctx); err != nil {
			printErr(err)
		}
	}
	if err := env.ClearToken(); err != nil {
		return err
	}
	fmt.Println(okStyle.Render("Logged out."))
	return nil
}

// RunWhoami prints the signed-in account profile.
func RunWhoami(env *Env) error {
	if err := env.RequireAuth(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()
	info, err := env.Client.GetUserInfo(ctx)
	if err != nil {
		return err
	}

	fmt.Println(promptStyle.Render(info.Username))
	if name := strings.TrimSpace(info.FirstName + " " + info.LastName); name != "" {
		fmt.Println(infoStyle.Render("name:  ") + name)
	}
	if info.Email != "" {
		fmt.Println(infoStyle.Render("email: ") + info.Email)
	}
	return nil
}
