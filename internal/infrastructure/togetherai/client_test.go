package togetherai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yourusername/store-assistant-bot/pkg/ratelimit"
	"github.com/yourusername/store-assistant-bot/pkg/retry"
)

func testClient(url string) *client {
	return &client{
		apiKey:     "test-key",
		model:      "test-model",
		baseURL:    url,
		httpClient: &http.Client{Timeout: time.Second},
		spacer:     ratelimit.NewSpacer(0),
		policy:     retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond},
	}
}

func completionBody(text string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": text}},
		},
	})
	return string(body)
}

func TestGenerateReply(t *testing.T) {
	var gotAuth string
	var gotReq chatCompletionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(completionBody("  Конечно! ")))
	}))
	defer srv.Close()

	reply, err := testClient(srv.URL).GenerateReply(context.Background(), "вопрос")
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}

	if reply != "Конечно!" {
		t.Errorf("reply = %q, want trimmed Конечно!", reply)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Content != "вопрос" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestGenerateReplyRetriesRateLimit(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(completionBody("готово")))
	}))
	defer srv.Close()

	reply, err := testClient(srv.URL).GenerateReply(context.Background(), "вопрос")
	if err != nil {
		t.Fatalf("GenerateReply: %v", err)
	}
	if reply != "готово" {
		t.Errorf("reply = %q", reply)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestGenerateReplyGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).GenerateReply(context.Background(), "вопрос"); err == nil {
		t.Fatal("expected error after exhausted retries")
	}
}

func TestGenerateReplyEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).GenerateReply(context.Background(), "вопрос"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
