package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartpg "github.com/dwikikusuma/storefront/internal/cart/infra/postgres"
	"github.com/dwikikusuma/storefront/internal/catalog"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	checkoutadapter "github.com/dwikikusuma/storefront/internal/checkout/infra/adapter"
	"github.com/dwikikusuma/storefront/internal/identity"
	"github.com/dwikikusuma/storefront/internal/notify"
	orderapp "github.com/dwikikusuma/storefront/internal/order/app"
	orderpg "github.com/dwikikusuma/storefront/internal/order/infra/postgres"
	"github.com/dwikikusuma/storefront/internal/payment"
	"github.com/dwikikusuma/storefront/internal/rest"
	userapp "github.com/dwikikusuma/storefront/internal/user/app"
	userpg "github.com/dwikikusuma/storefront/internal/user/infra/postgres"

	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "storefront-api",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	db, err := postgres.Open(postgres.Config{
		Host: cfg.Postgres.Host,
		Port: cfg.Postgres.Port,
		User: cfg.Postgres.User,
		Pass: cfg.Postgres.Pass,
		DB:   cfg.Postgres.DB,
	})
	if err != nil {
		log.Error("db open failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := ensureSchema(ctx, db); err != nil {
		log.Error("schema bootstrap failed", slog.Any("err", err))
		os.Exit(1)
	}

	// Cart
	cartRepo := cartpg.NewCartRepo(db)
	cartSvc := cartapp.NewService(cartRepo)

	// Orders
	orderRepo := orderpg.NewOrderRepo(db)
	orderSvc := orderapp.NewService(orderRepo)

	// Users + mail
	userRepo := userpg.NewUserRepo(db)
	sender := newSender(cfg, log)
	userSvc := userapp.NewService(userRepo, sender, cfg.ResetLinkBase, log)

	// Checkout
	confirmer := checkoutadapter.NewEmailConfirmer(userRepo, sender, log)
	checkoutSvc := checkoutapp.NewService(orderSvc, cartSvc, payment.NewMockProvider(), confirmer, log)

	// Catalog enrichment
	enricher := catalog.NewEnricher(catalog.NewHTTPClient(cfg.CatalogBaseURL), 10, log)

	handlers := rest.NewHandlers(cartSvc, checkoutSvc, userSvc, enricher, newVerifier(cfg), log)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           handlers.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

func newVerifier(cfg config.Config) identity.Verifier {
	if cfg.IdentityBaseURL != "" {
		return identity.NewHTTPVerifier(cfg.IdentityBaseURL)
	}

	// Dev fallback: DEV_SESSION_TOKENS="token1=userid1,token2=userid2".
	static := identity.StaticVerifier{}
	for _, pair := range strings.Split(os.Getenv("DEV_SESSION_TOKENS"), ",") {
		token, userID, ok := strings.Cut(pair, "=")
		if ok {
			static[strings.TrimSpace(token)] = strings.TrimSpace(userID)
		}
	}
	return static
}

func newSender(cfg config.Config, log *slog.Logger) notify.Sender {
	if cfg.SMTP.Host == "" {
		return notify.LogSender{Log: log}
	}
	return notify.NewSMTPSender(notify.SMTPConfig{
		Host: cfg.SMTP.Host,
		Port: cfg.SMTP.Port,
		User: cfg.SMTP.User,
		Pass: cfg.SMTP.Pass,
		From: cfg.SMTP.From,
	})
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	email         text NOT NULL UNIQUE,
	name          text NOT NULL DEFAULT '',
	address       text NOT NULL DEFAULT '',
	phone         text NOT NULL DEFAULT '',
	password_hash bytea,
	created_at    timestamptz NOT NULL DEFAULT now(),
	updated_at    timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS carts (
	id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id    uuid NOT NULL UNIQUE,
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS cart_items (
	id         uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	cart_id    uuid NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
	product_id uuid NOT NULL,
	quantity   integer NOT NULL CHECK (quantity > 0),
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now(),
	UNIQUE (cart_id, product_id)
);

CREATE TABLE IF NOT EXISTS orders (
	id             uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id        uuid NOT NULL,
	status         text NOT NULL,
	currency       text NOT NULL,
	payment_method text NOT NULL,
	total_amount   bigint NOT NULL CHECK (total_amount >= 0),
	created_at     timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS order_items (
	id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	order_id    uuid NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	product_id  uuid NOT NULL,
	quantity    integer NOT NULL CHECK (quantity > 0),
	unit_amount bigint NOT NULL CHECK (unit_amount >= 0)
);

CREATE TABLE IF NOT EXISTS password_reset_tokens (
	token_hash text PRIMARY KEY,
	user_id    uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	expires_at timestamptz NOT NULL,
	used_at    timestamptz
);
`
