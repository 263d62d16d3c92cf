package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/yourusername/store-assistant-bot/internal/domain/entity"
	"github.com/yourusername/store-assistant-bot/internal/domain/repository"
)

// Column headers in the product and office spreadsheets.
const (
	colModel        = "Модель"
	colStorage      = "Объём"
	colColor        = "Цвет"
	colAvailability = "Наличие"
	colOfficeState  = "Состояние"
)

// Client wraps a Sheets service authorized with a service account.
type Client struct {
	srv *sheets.Service
}

// NewClient authorizes against the Sheets API with the service-account
// JSON from the environment.
func NewClient(ctx context.Context, serviceAccountJSON string) (*Client, error) {
	srv, err := sheets.NewService(ctx,
		option.WithCredentialsJSON([]byte(serviceAccountJSON)),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{srv: srv}, nil
}

// ProductStore reads the catalog sheet. Rows are mapped by header name, so
// column order in the sheet does not matter.
func (c *Client) ProductStore(spreadsheetID string) repository.ProductRepository {
	return &productStore{srv: c.srv, spreadsheetID: spreadsheetID}
}

// OrderStore appends confirmed orders to the order sheet.
func (c *Client) OrderStore(spreadsheetID string) repository.OrderRepository {
	return &orderStore{srv: c.srv, spreadsheetID: spreadsheetID}
}

// OfficeStore reads the office-state sheet.
func (c *Client) OfficeStore(spreadsheetID string) repository.OfficeRepository {
	return &officeStore{srv: c.srv, spreadsheetID: spreadsheetID}
}

type productStore struct {
	srv           *sheets.Service
	spreadsheetID string
}

func (s *productStore) ListAll(ctx context.Context) ([]entity.Product, error) {
	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, "A1:Z").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read product sheet: %w", err)
	}
	if len(resp.Values) < 2 {
		return nil, nil
	}

	columns := headerIndex(resp.Values[0])
	products := make([]entity.Product, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		product := entity.Product{
			Model:        cellAt(row, columnAt(columns, colModel)),
			Storage:      cellAt(row, columnAt(columns, colStorage)),
			Color:        cellAt(row, columnAt(columns, colColor)),
			Availability: cellAt(row, columnAt(columns, colAvailability)),
		}
		if product.Model == "" {
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

type orderStore struct {
	srv           *sheets.Service
	spreadsheetID string
}

func (s *orderStore) Append(ctx context.Context, order entity.OrderDraft) error {
	row := &sheets.ValueRange{
		Values: [][]interface{}{{
			order.FullName,
			order.Contact,
			order.Model,
			order.Storage,
			order.Color,
			order.ChargerLabel(),
			order.Delivery,
		}},
	}

	_, err := s.srv.Spreadsheets.Values.
		Append(s.spreadsheetID, "A1", row).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append order row: %w", err)
	}
	return nil
}

type officeStore struct {
	srv           *sheets.Service
	spreadsheetID string
}

func (s *officeStore) Status(ctx context.Context) (string, error) {
	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, "A1:Z2").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("read office sheet: %w", err)
	}
	if len(resp.Values) < 2 {
		return "", fmt.Errorf("office sheet has no state row")
	}

	columns := headerIndex(resp.Values[0])
	idx := columnAt(columns, colOfficeState)
	if idx < 0 {
		return "", fmt.Errorf("office sheet has no %q column", colOfficeState)
	}
	return cellAt(resp.Values[1], idx), nil
}

// headerIndex maps trimmed header names to column positions.
func headerIndex(header []interface{}) map[string]int {
	columns := make(map[string]int, len(header))
	for i, cell := range header {
		name := strings.TrimSpace(fmt.Sprintf("%v", cell))
		if name != "" {
			columns[name] = i
		}
	}
	return columns
}

func columnAt(columns map[string]int, name string) int {
	if idx, ok := columns[name]; ok {
		return idx
	}
	return -1
}

func cellAt(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[idx]))
}
