package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/randomtoy/volva-go/internal/adapters/llm/openai"
	"github.com/randomtoy/volva-go/internal/domain"
	"github.com/randomtoy/volva-go/internal/ports"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func chatResponseBody(content string) map[string]any {
	return map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
}

func TestClient_Prophesy_Success(t *testing.T) {
	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-session" {
			t.Errorf("bad auth header: %s", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("bad content-type: %s", r.Header.Get("Content-Type"))
		}

		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponseBody("  A mystic answer.\n"))
	}))
	defer srv.Close()

	client := openai.NewClient(srv.Client(), srv.URL, "gpt-3.5-turbo", testLogger())

	out, err := client.Prophesy(context.Background(), "sk-session", ports.ProphecyInput{
		Question: "What awaits me?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "A mystic answer." {
		t.Errorf("unexpected text: %q", out)
	}

	if gotReq["model"] != "gpt-3.5-turbo" {
		t.Errorf("request model: %v", gotReq["model"])
	}
	if gotReq["temperature"] != 0.85 {
		t.Errorf("request temperature: %v", gotReq["temperature"])
	}
	if gotReq["max_tokens"] != float64(350) {
		t.Errorf("request max_tokens: %v", gotReq["max_tokens"])
	}
	msgs, _ := gotReq["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	user, _ := msgs[1].(map[string]any)
	content, _ := user["content"].(string)
	if !strings.Contains(content, "What awaits me?") {
		t.Error("question not embedded verbatim in the prompt")
	}
}

func TestClient_Prophesy_ReversedModifiers(t *testing.T) {
	var userContent string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.Unmarshal(body, &req)
		for _, m := range req.Messages {
			if m.Role == "user" {
				userContent = m.Content
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponseBody("A reading."))
	}))
	defer srv.Close()

	client := openai.NewClient(srv.Client(), srv.URL, "gpt-3.5-turbo", testLogger())

	_, err := client.Prophesy(context.Background(), "sk-test", ports.ProphecyInput{
		Question: "What awaits me?",
		Rune:     &ports.RuneInput{Name: "Isa", Meaning: "Stillness and ice."},
		Reversed: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Isa",
		"REVERSED",
		"opposite of its usual meaning",
		"Blocked or suppressed energy",
		"Hidden aspects",
		"misusing its energy",
	} {
		if !strings.Contains(userContent, want) {
			t.Errorf("reversed prompt missing %q", want)
		}
	}
}

func TestClient_Prophesy_UprightHasNoReversedClause(t *testing.T) {
	var userContent string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.Unmarshal(body, &req)
		userContent = req.Messages[len(req.Messages)-1].Content
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatResponseBody("A reading."))
	}))
	defer srv.Close()

	client := openai.NewClient(srv.Client(), srv.URL, "gpt-3.5-turbo", testLogger())

	_, err := client.Prophesy(context.Background(), "sk-test", ports.ProphecyInput{
		Question: "What awaits me?",
		Rune:     &ports.RuneInput{Name: "Isa"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(userContent, "REVERSED") {
		t.Error("upright reading must not carry the reversed clause")
	}
}

func TestClient_Prophesy_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	client := openai.NewClient(srv.Client(), srv.URL, "gpt-3.5-turbo", testLogger())

	_, err := client.Prophesy(context.Background(), "sk-test", ports.ProphecyInput{Question: "q"})
	if !errors.Is(err, domain.ErrUpstreamLLM) {
		t.Fatalf("expected ErrUpstreamLLM, got %v", err)
	}
}

func TestClient_Prophesy_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := openai.NewClient(srv.Client(), srv.URL, "gpt-3.5-turbo", testLogger())

	_, err := client.Prophesy(context.Background(), "sk-test", ports.ProphecyInput{Question: "q"})
	if !errors.Is(err, domain.ErrUpstreamLLM) {
		t.Fatalf("expected ErrUpstreamLLM, got %v", err)
	}
}
