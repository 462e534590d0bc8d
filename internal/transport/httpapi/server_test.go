package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sheikh-saqib/ledger-bot/internal/bot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoHandler struct {
	got []bot.Message
}

func (e *echoHandler) Handle(ctx context.Context, msg bot.Message) (string, bool) {
	e.got = append(e.got, msg)
	if msg.Text == "foo bar" {
		return "", false
	}
	return "echo " + msg.Text, true
}

func TestHealth(t *testing.T) {
	mux := NewMux(&echoHandler{}, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMessages(t *testing.T) {
	h := &echoHandler{}
	mux := NewMux(h, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"text":"+100","sender_id":5}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Reply string `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "echo +100", body.Reply)
	assert.Equal(t, []bot.Message{{Text: "+100", SenderID: 5}}, h.got)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"text":"foo bar"}`)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestMessagesRejectsBadRequests(t *testing.T) {
	mux := NewMux(&echoHandler{}, nil)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/messages", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`not json`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
