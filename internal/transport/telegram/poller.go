// Package telegram long-polls the Telegram Bot API and answers every text
// message in a thread reply.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sheikh-saqib/ledger-bot/internal/bot"
)

type MessageHandler interface {
	Handle(ctx context.Context, msg bot.Message) (string, bool)
}

// botAPI is the part of *tgbotapi.BotAPI the poller uses.
type botAPI interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Poller struct {
	api     botAPI
	handler MessageHandler
	timeout int
	logger  *slog.Logger
}

// NewPoller authenticates with token. timeout is the long-poll timeout in
// seconds.
func NewPoller(token string, h MessageHandler, timeout int, logger *slog.Logger) (*Poller, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("telegram bot authorized", "username", api.Self.UserName)
	return newPoller(api, h, timeout, logger), nil
}

func newPoller(api botAPI, h MessageHandler, timeout int, logger *slog.Logger) *Poller {
	return &Poller{api: api, handler: h, timeout: timeout, logger: logger}
}

// Run handles updates until ctx is done, then waits for in-flight messages.
// Each message is handled on its own goroutine; the ledger serializes the
// writes.
func (p *Poller) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = p.timeout
	updates := p.api.GetUpdatesChan(u)

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			p.api.StopReceivingUpdates()
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			if upd.Message == nil || upd.Message.Text == "" {
				continue
			}
			wg.Add(1)
			go func(m *tgbotapi.Message) {
				defer wg.Done()
				p.dispatch(ctx, m)
			}(upd.Message)
		}
	}
}

func (p *Poller) dispatch(ctx context.Context, m *tgbotapi.Message) {
	var sender int64
	if m.From != nil {
		sender = m.From.ID
	}

	text, ok := p.handler.Handle(ctx, bot.Message{Text: m.Text, SenderID: sender})
	if !ok {
		return
	}

	out := tgbotapi.NewMessage(m.Chat.ID, text)
	out.ReplyToMessageID = m.MessageID
	if _, err := p.api.Send(out); err != nil {
		p.logger.Warn("telegram send failed", "chat", m.Chat.ID, "error", err)
	}
}
