// Package notify is the Telegram side-channel. Order events are dispatched
// fire-and-forget: delivery failures are logged and swallowed, never
// surfaced to the mutation that triggered them.
package notify

import (
	"github.com/savdohub/savdo-backend/internal/apperr"
	"github.com/savdohub/savdo-backend/internal/modules/order"
)

// Sender delivers one raw message to a Telegram chat. Unlike the
// order.Notifier events, the admin send endpoint does surface delivery
// errors, since sending is its entire job.
type Sender interface {
	Send(chatID int64, text string) error
}

// Noop stands in when no bot token is configured. Order events vanish
// silently; a direct send reports the missing bot.
type Noop struct{}

func (Noop) Send(int64, string) error {
	return apperr.New(apperr.Upstream, "telegram bot is not configured")
}

func (Noop) OrderPlaced(*order.Order)        {}
func (Noop) OrderStatusChanged(*order.Order) {}
