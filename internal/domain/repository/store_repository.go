package repository

import (
	"context"

	"github.com/yourusername/store-assistant-bot/internal/domain/entity"
)

// ProductRepository exposes the spreadsheet-backed catalog.
type ProductRepository interface {
	// ListAll returns every catalog row, available or not.
	ListAll(ctx context.Context) ([]entity.Product, error)
}

// OrderRepository receives confirmed orders.
type OrderRepository interface {
	Append(ctx context.Context, order entity.OrderDraft) error
}

// OfficeRepository reports whether the pickup office is open.
type OfficeRepository interface {
	// Status returns the raw office state ("Открыт", "Закрыт", ...).
	Status(ctx context.Context) (string, error)
}
