package adapter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dwikikusuma/storefront/internal/notify"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	userdomain "github.com/dwikikusuma/storefront/internal/user/domain"
	"github.com/dwikikusuma/storefront/pkg/money"
)

type UserGetter interface {
	Get(ctx context.Context, id string) (userdomain.User, error)
}

// EmailConfirmer mails an order confirmation. Failures are logged only;
// checkout never waits on or fails over delivery.
type EmailConfirmer struct {
	users  UserGetter
	sender notify.Sender
	log    *slog.Logger
}

func NewEmailConfirmer(users UserGetter, sender notify.Sender, log *slog.Logger) *EmailConfirmer {
	return &EmailConfirmer{users: users, sender: sender, log: log}
}

func (c *EmailConfirmer) OrderConfirmed(ctx context.Context, order orderdomain.Order) {
	go func() {
		// Detached from the request context so an abandoned HTTP exchange
		// does not cancel the send.
		ctx := context.WithoutCancel(ctx)

		user, err := c.users.Get(ctx, order.UserID)
		if err != nil {
			c.log.Warn("order confirmation skipped, user lookup failed",
				slog.String("order_id", order.ID), slog.Any("err", err))
			return
		}

		body := fmt.Sprintf(
			"Your order %s has been placed.\nTotal: %s %s\nPayment method: %s\n",
			order.ID, order.Currency, money.FromMinor(order.TotalAmount), order.PaymentMethod,
		)
		if err := c.sender.Send(ctx, user.Email, "Order confirmation", body); err != nil {
			c.log.Warn("order confirmation send failed",
				slog.String("order_id", order.ID), slog.Any("err", err))
		}
	}()
}
