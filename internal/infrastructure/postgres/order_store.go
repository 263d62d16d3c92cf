package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"

	"github.com/yourusername/store-assistant-bot/internal/domain/entity"
)

const (
	connectAttempts = 10
	connectDelay    = 2 * time.Second
)

const createOrdersTable = `
CREATE TABLE IF NOT EXISTS orders (
	id          SERIAL PRIMARY KEY,
	full_name   TEXT NOT NULL,
	contact     TEXT NOT NULL,
	model       TEXT NOT NULL,
	storage     TEXT NOT NULL,
	color       TEXT NOT NULL,
	charger     TEXT NOT NULL,
	delivery    TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// OrderStore archives confirmed orders in Postgres instead of the order
// sheet. Selected by setting DATABASE_URL.
type OrderStore struct {
	db *sql.DB
}

// NewOrderStore connects with retry (the database may still be starting
// alongside the bot) and ensures the orders table exists.
func NewOrderStore(dsn string) (*OrderStore, error) {
	var db *sql.DB
	var lastErr error

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		conn, err := sql.Open("postgres", dsn)
		if err == nil {
			if err = conn.Ping(); err == nil {
				db = conn
				break
			}
			conn.Close()
		}
		lastErr = err
		log.Printf("Postgres недоступен (попытка %d/%d): %v", attempt, connectAttempts, err)
		time.Sleep(connectDelay)
	}
	if db == nil {
		return nil, fmt.Errorf("postgres connect: %w", lastErr)
	}

	if _, err := db.Exec(createOrdersTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create orders table: %w", err)
	}
	return &OrderStore{db: db}, nil
}

func (s *OrderStore) Append(ctx context.Context, order entity.OrderDraft) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO orders (full_name, contact, model, storage, color, charger, delivery)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		order.FullName,
		order.Contact,
		order.Model,
		order.Storage,
		order.Color,
		order.ChargerLabel(),
		order.Delivery,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *OrderStore) Close() error {
	return s.db.Close()
}
