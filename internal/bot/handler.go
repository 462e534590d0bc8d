// Package bot glues parsing, execution and rendering into a single
// message-in, reply-out step shared by every transport.
package bot

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sheikh-saqib/ledger-bot/internal/command"
	"github.com/sheikh-saqib/ledger-bot/internal/ledger"
	"github.com/sheikh-saqib/ledger-bot/internal/reply"
)

// Message is an inbound chat message.
type Message struct {
	Text     string
	SenderID int64
}

type Executor interface {
	Execute(ctx context.Context, caller ledger.Caller, cmd command.Command) (ledger.Result, error)
}

type Handler struct {
	parser   command.Parser
	executor Executor
	logger   *slog.Logger
}

func NewHandler(executor Executor, parser command.Parser, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{parser: parser, executor: executor, logger: logger}
}

// Handle returns the reply for msg. ok is false when msg is not a command
// and nothing should be sent back.
func (h *Handler) Handle(ctx context.Context, msg Message) (text string, ok bool) {
	cmd, err := h.parser.Parse(msg.Text)
	if err != nil {
		var perr *command.ParseError
		if !errors.As(err, &perr) {
			perr = &command.ParseError{Kind: command.BadAmount, Msg: err.Error()}
		}
		h.logger.Debug("rejected message", "sender", msg.SenderID, "reason", perr.Msg)
		return reply.Render(ledger.Rejected{Err: perr}), true
	}
	if cmd == nil {
		return "", false
	}

	res, err := h.executor.Execute(ctx, ledger.Caller{ID: msg.SenderID}, cmd)
	if err != nil {
		h.logger.Error("command failed", "sender", msg.SenderID, "command", describe(cmd), "error", err)
		return reply.SystemError, true
	}

	h.logger.Debug("command handled", "sender", msg.SenderID, "command", describe(cmd))
	return reply.Render(res), true
}

func describe(cmd command.Command) string {
	switch cmd.(type) {
	case command.RecordEntry:
		return "record"
	case command.QuerySummary:
		return "summary"
	case command.GetOrSetRate:
		return "rate"
	case command.LookupAddress:
		return "lookup"
	case command.Help:
		return "help"
	case command.EditRecord:
		return "edit"
	case command.Reset:
		return "reset"
	default:
		return "unknown"
	}
}
