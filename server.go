package main

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"jpmorph/tokenize"
)

// maxRequestBytes caps the request body read by the tokenize handler.
const maxRequestBytes = 5 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// tokenizeHandler serves POST /tokenize: the body is raw UTF-8 text, the
// response an ordered JSON array of {text, detail} objects.
type tokenizeHandler struct {
	tok *tokenize.Tokenizer
}

func (h *tokenizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}

	tokens, err := h.tok.Tokenize(string(body))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, tokenize.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		log.Printf("tokenize error: %v", err)
		writeError(w, status, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tokens); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
