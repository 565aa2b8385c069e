package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func chatStub(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestOpenAIGenerate(t *testing.T) {
	t.Run("parses fenced JSON", func(t *testing.T) {
		srv := chatStub(t, "```json\n{\"items\":[{\"name\":\"Upma\",\"serving\":\"1 bowl\",\"calories\":220}],\"image_prompt\":\"a bowl of upma\"}\n```")
		defer srv.Close()

		svc := NewOpenAIService(OpenAIOptions{APIKey: "test-key", BaseURL: srv.URL, Model: "test", Timeout: time.Second})
		got, err := svc.Generate(baseProfile(), "Breakfast")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if len(got.Items) != 1 || got.Items[0].Name != "Upma" {
			t.Fatalf("items = %+v", got.Items)
		}
	})

	t.Run("unparsable answer is kept as raw text", func(t *testing.T) {
		srv := chatStub(t, "Sorry, I could not come up with anything today.")
		defer srv.Close()

		svc := NewOpenAIService(OpenAIOptions{APIKey: "test-key", BaseURL: srv.URL, Model: "test", Timeout: time.Second})
		got, err := svc.Generate(baseProfile(), "Breakfast")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if len(got.Items) != 1 || got.Items[0].Name == "" {
			t.Fatalf("raw answer lost: %+v", got.Items)
		}
	})

	t.Run("API error surfaces status and body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
		}))
		defer srv.Close()

		svc := NewOpenAIService(OpenAIOptions{APIKey: "test-key", BaseURL: srv.URL, Model: "test", Timeout: time.Second})
		if _, err := svc.Generate(baseProfile(), "Breakfast"); err == nil {
			t.Fatal("want error on non-200 response")
		}
	})

	t.Run("missing key fails fast", func(t *testing.T) {
		svc := NewOpenAIService(OpenAIOptions{BaseURL: "http://localhost:0", Model: "test", Timeout: time.Second})
		if _, err := svc.Generate(baseProfile(), "Breakfast"); err == nil {
			t.Fatal("want error without api key")
		}
	})
}

func TestStripCodeFences(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                      "{\"a\":1}",
		"```json\n{\"a\":1}\n```":        "{\"a\":1}",
		"```\n{\"a\":1}\n```":            "{\"a\":1}",
		"  ```json\n{\"a\":1}\n```  ":    "{\"a\":1}",
		"plain text with no fences here": "plain text with no fences here",
	}
	for in, want := range cases {
		if got := stripCodeFences(in); got != want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", in, got, want)
		}
	}
}
