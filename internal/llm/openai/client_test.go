package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"token-analysis-backend/internal/llm"
)

func chatReply(content string) string {
	reply := map[string]any{
		"id":    "chatcmpl-test",
		"model": "gpt-test",
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
		"usage": map[string]any{
			"prompt_tokens":     10,
			"completion_tokens": 5,
			"total_tokens":      15,
		},
	}
	data, _ := json.Marshal(reply)
	return string(data)
}

func TestCompleteReturnsValidJSON(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatReply(`{"answer":"Yes"}`)))
	}))
	defer srv.Close()

	client, err := NewClient("test-key", "gpt-test", srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	raw, err := client.Complete(context.Background(), llm.CompleteInput{
		Instruction: "Extract redemption rights.",
		Context:     "Holders may redeem at par.",
		Schema:      map[string]any{"type": "object"},
		Label:       "redemption_rights",
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if string(raw) != `{"answer":"Yes"}` {
		t.Fatalf("unexpected payload: %s", raw)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotReq.Model != "gpt-test" {
		t.Fatalf("unexpected model: %q", gotReq.Model)
	}
	if gotReq.ResponseFormat.Type != "json_object" {
		t.Fatalf("expected json_object response format, got %q", gotReq.ResponseFormat.Type)
	}
	if gotReq.Temperature == nil || *gotReq.Temperature != 0 {
		t.Fatalf("expected temperature 0, got %v", gotReq.Temperature)
	}
	if len(gotReq.Messages) != 3 {
		t.Fatalf("expected system+user+schema messages, got %d", len(gotReq.Messages))
	}
}

func TestCompleteRepairsInvalidJSONOnce(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if calls == 1 {
			w.Write([]byte(chatReply(`{"answer": "Yes"`)))
			return
		}
		w.Write([]byte(chatReply(`{"answer":"Yes"}`)))
	}))
	defer srv.Close()

	client, err := NewClient("test-key", "gpt-test", srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	raw, err := client.Complete(context.Background(), llm.CompleteInput{
		Instruction: "Extract.",
		Context:     "doc",
		Schema:      map[string]any{"type": "object"},
		Label:       "licenses",
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected one repair round trip, got %d calls", calls)
	}
	if string(raw) != `{"answer":"Yes"}` {
		t.Fatalf("unexpected payload: %s", raw)
	}
}

func TestCompleteGivesUpAfterFailedRepair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatReply(`not json at all`)))
	}))
	defer srv.Close()

	client, err := NewClient("test-key", "gpt-test", srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Complete(context.Background(), llm.CompleteInput{
		Instruction: "Extract.",
		Context:     "doc",
		Schema:      map[string]any{"type": "object"},
		Label:       "licenses",
	})
	if err == nil {
		t.Fatalf("expected an error on persistently invalid JSON")
	}
	var ce *llm.CompletionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CompletionError, got %T", err)
	}
	if ce.Label != "licenses" {
		t.Fatalf("unexpected label: %q", ce.Label)
	}
}

func TestCompleteSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit_error"}}`))
	}))
	defer srv.Close()

	client, err := NewClient("test-key", "gpt-test", srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Complete(context.Background(), llm.CompleteInput{
		Instruction: "Extract.",
		Context:     "doc",
		Schema:      map[string]any{"type": "object"},
		Label:       "legal_jurisdiction",
	})
	if err == nil {
		t.Fatalf("expected API error to surface")
	}
	var ce *llm.CompletionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CompletionError, got %T", err)
	}
}

func TestNewClientRequiresModelAndKey(t *testing.T) {
	if _, err := NewClient("", "gpt-test", ""); err == nil {
		t.Fatalf("expected error for missing api key")
	}
	if _, err := NewClient("key", "", ""); err == nil {
		t.Fatalf("expected error for missing model")
	}
}
