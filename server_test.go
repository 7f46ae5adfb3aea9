package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"jpmorph/lexicon"
	"jpmorph/tokenize"
)

var (
	testHandler *tokenizeHandler
	handlerOnce sync.Once
)

func handler(t *testing.T) *tokenizeHandler {
	t.Helper()
	handlerOnce.Do(func() {
		lex, err := lexicon.Load("ipa", "")
		if err != nil {
			t.Fatalf("lexicon.Load(ipa) error = %v", err)
		}
		testHandler = &tokenizeHandler{tok: tokenize.New(lex)}
	})
	return testHandler
}

func TestTokenizeEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/tokenize", strings.NewReader("すもももももももものうち"))
	w := httptest.NewRecorder()
	handler(t).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var tokens []struct {
		Text   string   `json:"text"`
		Detail []string `json:"detail"`
	}
	if err := json.NewDecoder(w.Body).Decode(&tokens); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(tokens) != 7 {
		t.Fatalf("token count = %d, want 7", len(tokens))
	}
	if tokens[0].Text != "すもも" {
		t.Errorf("first token = %q, want すもも", tokens[0].Text)
	}
	for i, tk := range tokens {
		if len(tk.Detail) == 0 {
			t.Errorf("token %d %q has no detail", i, tk.Text)
		}
	}
}

func TestTokenizeEndpointEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/tokenize", strings.NewReader(""))
	w := httptest.NewRecorder()
	handler(t).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var tokens []json.RawMessage
	if err := json.NewDecoder(w.Body).Decode(&tokens); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(tokens) != 0 {
		t.Errorf("token count = %d, want 0", len(tokens))
	}
}

func TestTokenizeEndpointRejectsInvalidUTF8(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/tokenize", strings.NewReader("\xff\xfe"))
	w := httptest.NewRecorder()
	handler(t).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp errorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error == "" {
		t.Error("error response has no message")
	}
}

func TestTokenizeEndpointRejectsGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tokenize", nil)
	w := httptest.NewRecorder()
	handler(t).ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}
