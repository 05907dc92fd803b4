package notify

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/tutorbook-app/backend/internal/model"
	"go.uber.org/zap"
)

// Telegram sends booking events to the tutor's chat.
type Telegram struct {
	bot    *bot.Bot
	chatID int64
	logger *zap.Logger
}

func NewTelegram(token string, chatID int64, logger *zap.Logger) (*Telegram, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &Telegram{
		bot:    b,
		chatID: chatID,
		logger: logger,
	}, nil
}

func (t *Telegram) send(ctx context.Context, text string) {
	_, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: t.chatID,
		Text:   text,
	})
	if err != nil {
		t.logger.Warn("Failed to send telegram notification", zap.Error(err))
	}
}

func (t *Telegram) SlotBooked(ctx context.Context, slot *model.Slot, student *model.User) {
	text := fmt.Sprintf(
		"📅 New booking: %s on %s, %s-%s",
		student.Name,
		slot.StartTime.Format("02.01.2006"),
		slot.StartTime.Format("15:04"),
		slot.EndTime.Format("15:04"),
	)
	if slot.Topic != "" {
		text += "\nTopic: " + slot.Topic
	}
	t.send(ctx, text)
}

func (t *Telegram) SlotCanceled(ctx context.Context, slot *model.Slot, byAdmin bool) {
	who := "student"
	if byAdmin {
		who = "admin"
	}
	t.send(ctx, fmt.Sprintf(
		"❌ Booking canceled by %s: %s %s-%s",
		who,
		slot.StartTime.Format("02.01.2006"),
		slot.StartTime.Format("15:04"),
		slot.EndTime.Format("15:04"),
	))
}

func (t *Telegram) WaitlistRequest(ctx context.Context, entry *model.WaitlistEntry) {
	text := "✉️ New contact request from " + entry.Name
	if entry.Phone != nil && *entry.Phone != "" {
		text += "\nPhone: " + *entry.Phone
	}
	if entry.Email != nil && *entry.Email != "" {
		text += "\nEmail: " + *entry.Email
	}
	if entry.Message != nil && *entry.Message != "" {
		text += "\n\n" + *entry.Message
	}
	t.send(ctx, text)
}
