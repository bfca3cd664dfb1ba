package main

import (
	"context"
	"log"

	"github.com/sakchaid/krua-pos/internal/config"
	"github.com/sakchaid/krua-pos/internal/db"
	"github.com/sakchaid/krua-pos/internal/idempotency"
	"github.com/sakchaid/krua-pos/internal/inventory"
	"github.com/sakchaid/krua-pos/internal/menu"
	"github.com/sakchaid/krua-pos/internal/notify"
	"github.com/sakchaid/krua-pos/internal/order"
	"github.com/sakchaid/krua-pos/internal/payment"
	"github.com/sakchaid/krua-pos/internal/reservation"
	"github.com/sakchaid/krua-pos/internal/user"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if err := db.RunMigrations(cfg.PostgresDSN); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	pool, err := db.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	var kitchen *notify.Publisher
	if cfg.AMQPURL != "" {
		kitchen, err = notify.New(cfg.AMQPURL)
		if err != nil {
			// notifications are best-effort, the POS must keep taking orders
			log.Printf("[main] rabbitmq unavailable, notifications disabled: %v", err)
			kitchen = nil
		} else {
			defer kitchen.Close()
		}
	}

	a := &app{
		cfg:          cfg,
		orders:       order.NewPGRepo(pool),
		menu:         menu.NewPGRepo(pool),
		users:        user.NewPGRepo(pool),
		payments:     payment.NewPGRepo(pool),
		inventory:    inventory.NewPGRepo(pool),
		reservations: reservation.NewPGRepo(pool),
		gate:         idempotency.NewGate(idempotency.NewPGStore(pool), cfg.IdempotencyTTL),
		kitchen:      kitchen,
	}

	r := newRouter(a)
	log.Printf("pos-server listening on %s", cfg.Addr)
	log.Fatal(r.Run(cfg.Addr))
}
