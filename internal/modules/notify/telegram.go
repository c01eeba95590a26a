package notify

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/savdohub/savdo-backend/internal/apperr"
	"github.com/savdohub/savdo-backend/internal/modules/order"
	"github.com/savdohub/savdo-backend/internal/modules/product"
	"github.com/savdohub/savdo-backend/internal/modules/user"
)

// Telegram sends order notifications through the Bot API. Super-admins with
// a chat id get every order in full; store accounts get their scoped view of
// the orders that touch their products.
type Telegram struct {
	bot      *tgbotapi.BotAPI
	users    user.Repository
	products product.Repository
}

// NewTelegram connects the bot. It fails when the token is rejected by the
// Bot API; callers fall back to Noop.
func NewTelegram(token string, users user.Repository, products product.Repository) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "connect telegram bot", err)
	}
	return &Telegram{bot: bot, users: users, products: products}, nil
}

// Send delivers one message. Used by the admin send endpoint.
func (t *Telegram) Send(chatID int64, text string) error {
	if _, err := t.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return apperr.Wrap(apperr.Upstream, "telegram send", err)
	}
	return nil
}

// OrderPlaced implements order.Notifier.
func (t *Telegram) OrderPlaced(o *order.Order) {
	go t.dispatch("Yangi buyurtma", o)
}

// OrderStatusChanged implements order.Notifier.
func (t *Telegram) OrderStatusChanged(o *order.Order) {
	go t.dispatch("Buyurtma holati yangilandi", o)
}

// dispatch runs detached from the request that produced the event; every
// failure is logged and dropped here.
func (t *Telegram) dispatch(title string, o *order.Order) {
	ctx := context.Background()

	accounts, err := t.users.List(ctx)
	if err != nil {
		log.Printf("notify: list accounts: %v", err)
		return
	}
	owners, err := t.storeOwners(ctx)
	if err != nil {
		log.Printf("notify: list products: %v", err)
		return
	}

	for _, u := range accounts {
		if u.TelegramChatID == nil {
			continue
		}
		view := o
		if u.IsStore() {
			scoped := order.ScopeForStore([]*order.Order{o}, owners, u.ID)
			if len(scoped) == 0 {
				continue
			}
			view = scoped[0]
		}
		if err := t.Send(*u.TelegramChatID, formatOrder(title, view)); err != nil {
			log.Printf("notify: send to chat %d: %v", *u.TelegramChatID, err)
		}
	}
}

func (t *Telegram) storeOwners(ctx context.Context) (map[uuid.UUID]uuid.UUID, error) {
	products, err := t.products.List(ctx)
	if err != nil {
		return nil, err
	}
	owners := make(map[uuid.UUID]uuid.UUID, len(products))
	for _, p := range products {
		if p.StoreID != nil {
			owners[p.ID] = *p.StoreID
		}
	}
	return owners, nil
}

func formatOrder(title string, o *order.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s #%s\n", title, o.ID)
	fmt.Fprintf(&b, "Holat: %s\n", o.Status)
	fmt.Fprintf(&b, "Telefon: %s\n", o.Phone)
	fmt.Fprintf(&b, "Manzil: %s\n", o.Address)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- %s ×%d (%s)\n", it.Name, it.Quantity, it.Extension().StringFixed(2))
	}
	fmt.Fprintf(&b, "Jami: %s", o.Total.StringFixed(2))
	return b.String()
}
