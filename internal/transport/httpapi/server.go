// Package httpapi exposes the bot over plain HTTP, mostly for integration
// with other chat gateways and for manual testing.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sheikh-saqib/ledger-bot/internal/bot"
)

type MessageHandler interface {
	Handle(ctx context.Context, msg bot.Message) (string, bool)
}

// NewMux wires the routes:
//
//	GET  /health
//	POST /messages  {"text": "+100", "sender_id": 1} -> {"reply": "..."} or 204
func NewMux(h MessageHandler, logger *slog.Logger) *http.ServeMux {
	if logger == nil {
		logger = slog.Default()
	}
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("/messages", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			Text     string `json:"text"`
			SenderID int64  `json:"sender_id"`
		}

		// Parse JSON body
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		text, ok := h.Handle(r.Context(), bot.Message{Text: req.Text, SenderID: req.SenderID})
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		response := struct {
			Reply string `json:"reply"`
		}{
			Reply: text,
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.Warn("write reply failed", "error", err)
		}
	})

	return mux
}
