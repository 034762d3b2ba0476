package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"codesync/internal/ai"
	"codesync/internal/execute"
	"codesync/internal/models"
)

// Covers a full execute round trip: submission plus five 1s polls.
const executeTimeout = 20 * time.Second

type Handlers struct {
	log       *zap.Logger
	runner    *execute.Client
	assistant ai.Assistant
}

// NewHandlers wires the HTTP glue. assistant may be nil when no API key is
// configured; /ask-ai then reports the feature unavailable.
func NewHandlers(log *zap.Logger, runner *execute.Client, assistant ai.Assistant) *Handlers {
	return &Handlers{log: log, runner: runner, assistant: assistant}
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("Hello from CodeSync server!"))
}

func (h *Handlers) ExecuteCode(w http.ResponseWriter, r *http.Request) {
	var req models.ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "Code is required.")
		return
	}
	if req.Language == "" {
		req.Language = "javascript"
	}
	if !h.runner.Supported(req.Language) {
		writeError(w, http.StatusBadRequest, "Unsupported language.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), executeTimeout)
	defer cancel()

	result, err := h.runner.Run(ctx, req.Language, req.Code)
	if err != nil {
		if errors.Is(err, execute.ErrUnsupportedLanguage) {
			writeError(w, http.StatusBadRequest, "Unsupported language.")
			return
		}
		h.log.Error("code execution failed", zap.String("language", req.Language), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "An error occurred while executing the code.")
		return
	}
	writeJSON(w, result)
}

func (h *Handlers) AskAI(w http.ResponseWriter, r *http.Request) {
	var req models.AskAIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Code == "" || req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "Code and a prompt are required.")
		return
	}
	if h.assistant == nil {
		writeError(w, http.StatusServiceUnavailable, "AI assistant is not configured.")
		return
	}

	response, err := h.assistant.Ask(r.Context(), req.Code, req.Prompt)
	if err != nil {
		h.log.Error("ai assistant request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to get a response from the AI assistant.")
		return
	}
	writeJSON(w, models.AskAIResponse{Response: response})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: msg})
}
