package catalog

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

const (
	StatusInStock    = "In Stock"
	StatusOutOfStock = "Out of Stock"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Description string          `json:"description"`
}

func (p Product) InStock() bool { return p.Stock > 0 }

func (p Product) StockStatus() string {
	if p.InStock() {
		return StatusInStock
	}
	return StatusOutOfStock
}

type productJSON struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Price       json.Number `json:"price"`
	Stock       int         `json:"stock"`
	Description string      `json:"description"`
}

// MarshalJSON writes the price as a JSON number instead of decimal's quoted string.
func (p Product) MarshalJSON() ([]byte, error) {
	return encodeJSON(productJSON{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       json.Number(p.Price.String()),
		Stock:       p.Stock,
		Description: p.Description,
	})
}

// encodeJSON is json.Marshal without HTML escaping and without the trailing newline.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
