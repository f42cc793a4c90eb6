// Copyright (c) 2025 LEGALIA Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/legalia/legalia-tui/internal/model"
)

// newTestClient returns a client pointed at server with a fixed token.
func newTestClient(server *httptest.Server, token string) *Client {
	c := New(server.URL).WithLogger(log.New(io.Discard, "", 0))
	if token != "" {
		c.WithTokenSource(func() string { return token })
	}
	return c
}

func TestChat_Success(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer": "42", "source_documents": ["doc one", "doc two"]}`))
	}))
	defer server.Close()

	client := newTestClient(server, "tok-abc")
	resp, err := client.Chat(context.Background(), ChatRequest{
		Question:    "what is the answer",
		ModelName:   "llama3",
		Temperature: 0.7,
		ChatName:    "Default Chat",
		Collections: model.ScopeAll,
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if resp.Answer != "42" {
		t.Errorf("Answer = %q", resp.Answer)
	}
	if len(resp.SourceDocuments) != 2 {
		t.Errorf("SourceDocuments = %v", resp.SourceDocuments)
	}
	if gotAuth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody["collections"] != "all" {
		t.Errorf(`collections = %v, want the "all" sentinel`, gotBody["collections"])
	}
	if _, ok := gotBody["groq_api_token"]; !ok {
		t.Error("groq_api_token field missing; backend requires it even when null")
	}
}

func TestChat_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "model exploded"}`))
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	_, err := client.Chat(context.Background(), ChatRequest{Question: "q"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusInternalServerError || apiErr.Message != "model exploded" {
		t.Errorf("APIError = %+v", apiErr)
	}
}

func TestChat_NoRetryOnServerError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	if _, err := client.Chat(context.Background(), ChatRequest{Question: "q"}); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("server saw %d requests, want exactly 1 (no retries)", calls)
	}
}

func TestChatHistory_ConvertsWireMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat_history" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"Work": [
				{"text": "hello", "isUser": true, "timestamp": "2025-06-01T10:00:00+00:00"},
				{"text": "hi there", "isUser": false, "timestamp": "2025-06-01T10:00:05+00:00"}
			],
			"Default Chat": []
		}`))
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	order, history, err := client.ChatHistory(context.Background())
	if err != nil {
		t.Fatalf("ChatHistory: %v", err)
	}
	if len(order) != 2 || order[0] != "Default Chat" || order[1] != "Work" {
		t.Errorf("order = %v", order)
	}
	msgs := history["Work"]
	if len(msgs) != 2 {
		t.Fatalf("Work transcript = %d messages", len(msgs))
	}
	if !msgs[0].IsUser() || msgs[1].IsUser() {
		t.Error("roles not preserved from isUser flags")
	}
	if msgs[0].Timestamp.UTC().Hour() != 10 {
		t.Errorf("timestamp not parsed: %v", msgs[0].Timestamp)
	}
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		w.Header().Set("Content-Type", "application/json")
		if creds["password"] == "right" {
			w.Write([]byte(`{"authenticated": true, "token": "tok-xyz"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"authenticated": false, "error": "invalid credentials"}`))
	}))
	defer server.Close()

	client := newTestClient(server, "")

	resp, err := client.Login(context.Background(), "alice", "right")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token != "tok-xyz" {
		t.Errorf("Token = %q", resp.Token)
	}

	_, err = client.Login(context.Background(), "alice", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "invalid credentials" {
		t.Errorf("bad-password err = %v", err)
	}
}

func TestCheckAuth_NoTokenShortCircuits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request reached the server without a token")
	}))
	defer server.Close()

	client := newTestClient(server, "")
	ok, err := client.CheckAuth(context.Background())
	if err != nil || ok {
		t.Errorf("CheckAuth = %v, %v; want false, nil", ok, err)
	}
}

func TestGetUserInfo_ExpiredToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The backend reports expiry as HTTP 200 with an error string.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": "token introspection failed", "message": "Token may be expired"}`))
	}))
	defer server.Close()

	client := newTestClient(server, "stale")
	_, err := client.GetUserInfo(context.Background())
	if !errors.Is(err, ErrSessionExpired) {
		t.Errorf("err = %v, want ErrSessionExpired", err)
	}
}

func TestDeleteChatSpace_LastSpaceRefusal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success": false, "error": "Cannot delete the only chat space"}`))
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	err := client.DeleteChatSpace(context.Background(), "Default Chat")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Message != "Cannot delete the only chat space" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestProcessPDF_MultipartAndJobID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("ParseMultipartForm: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()
		if header.Filename != "contract.pdf" {
			t.Errorf("filename = %q", header.Filename)
		}
		if got := r.FormValue("model_name"); got != "llama3" {
			t.Errorf("model_name = %q", got)
		}
		if got := r.FormValue("temperature"); got != "0.7" {
			t.Errorf("temperature = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"processId": "job-1"}`))
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	id, err := client.ProcessPDF(context.Background(), "/tmp/contract.pdf",
		strings.NewReader("%PDF-1.4 fake"), "llama3", 0.7, "")
	if err != nil {
		t.Fatalf("ProcessPDF: %v", err)
	}
	if id != "job-1" {
		t.Errorf("processId = %q", id)
	}
}

func TestSubmit_MissingJobIDIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "GitHub repository processed successfully!"}`))
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	_, err := client.ProcessGitHub(context.Background(), "https://github.com/acme/demo")
	if !errors.Is(err, ErrMissingJobID) {
		t.Errorf("err = %v, want ErrMissingJobID", err)
	}
}

func TestGetProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/get_progress/job-7" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"percentage": 62.5}`))
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	p, err := client.GetProgress(context.Background(), "job-7")
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if p.Percentage != 62.5 {
		t.Errorf("Percentage = %v", p.Percentage)
	}
}

func TestGenerateUnitTests_ReturnsCSV(t *testing.T) {
	const csv = "name,input,expected\nTestAdd,1+1,2\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate_unit_tests" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(csv))
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	got, err := client.GenerateUnitTests(context.Background(), GenerateRequest{
		Prompt: "generate unit tests", ModelName: "llama3", Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("GenerateUnitTests: %v", err)
	}
	if string(got) != csv {
		t.Errorf("csv = %q", got)
	}
}

func TestKB_ListAndDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/knowledge_base/langchain_pg_collection":
			w.Write([]byte(`[{"name": "PDF Document", "uuid": "u-1"}]`))
		case "/api/knowledge_base/delete":
			var payload map[string]string
			json.NewDecoder(r.Body).Decode(&payload)
			if payload["table"] != TableEmbeddings || payload["uuid"] != "u-9" {
				t.Errorf("delete payload = %v", payload)
			}
			w.Write([]byte(`{"message": "Successfully deleted from knowledge base"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	rows, err := client.KBCollections(context.Background())
	if err != nil {
		t.Fatalf("KBCollections: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "PDF Document" {
		t.Errorf("rows = %v", rows)
	}
	if err := client.KBDelete(context.Background(), TableEmbeddings, "u-9"); err != nil {
		t.Errorf("KBDelete: %v", err)
	}
	if err := client.KBDelete(context.Background(), "users", "u-9"); err == nil {
		t.Error("KBDelete accepted an unknown table")
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server, "tok")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := client.Chat(ctx, ChatRequest{Question: "q"}); err == nil {
		t.Fatal("expected context deadline error")
	}
}
