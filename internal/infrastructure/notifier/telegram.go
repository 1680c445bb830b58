package notifier

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"avenqor/internal/domain/entity"
)

// TelegramBot pushes staff notifications about new paid orders and contact
// messages into a private chat.
type TelegramBot struct {
	bot    *telego.Bot
	chatID int64
}

func NewTelegramBot(token string, chatID int64) (*TelegramBot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (b *TelegramBot) NotifyNewRequest(ctx context.Context, req entity.ServiceRequest) error {
	kind := "Custom course"
	if req.Kind == entity.RequestKindAIStrategy {
		kind = "AI strategy"
	}

	text := fmt.Sprintf(
		"🆕 <b>New order</b>\n\n"+
			"📦 <b>Kind:</b> %s\n"+
			"🪙 <b>Tokens:</b> %d\n"+
			"🆔 <b>Request:</b> %s\n"+
			"👤 <b>User:</b> %s",
		kind,
		req.Tokens,
		req.ID,
		req.UserID,
	)

	return b.send(ctx, text)
}

func (b *TelegramBot) NotifyContact(ctx context.Context, msg entity.ContactMessage) error {
	text := fmt.Sprintf(
		"✉️ <b>Contact form</b>\n\n"+
			"👤 <b>From:</b> %s (%s)\n"+
			"📝 <b>Subject:</b> %s\n\n"+
			"%s",
		msg.FullName,
		msg.Email,
		msg.Subject,
		msg.Message,
	)

	return b.send(ctx, text)
}

func (b *TelegramBot) send(ctx context.Context, text string) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		text,
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}
