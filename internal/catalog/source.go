package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Source produces the product collection once, at startup.
type Source interface {
	Load(ctx context.Context) ([]Product, error)
}

func Open(ctx context.Context, src Source) (*Store, error) {
	products, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return NewStore(products)
}

type SampleSource struct{}

func (SampleSource) Load(context.Context) ([]Product, error) {
	return SampleProducts(), nil
}

func SampleProducts() []Product {
	return []Product{
		{ID: "PROD-001", Name: "Wireless Keyboard", Category: "Electronics", Price: price("49.99"), Stock: 150, Description: "Ergonomic wireless keyboard with backlit keys and Bluetooth 5.0 connectivity."},
		{ID: "PROD-002", Name: "Running Shoes", Category: "Sports", Price: price("89.99"), Stock: 75, Description: "Lightweight running shoes with responsive cushioning and breathable mesh upper."},
		{ID: "PROD-003", Name: "Coffee Maker", Category: "Home & Kitchen", Price: price("129.99"), Stock: 40, Description: "12-cup programmable coffee maker with thermal carafe and auto-shutoff."},
		{ID: "PROD-004", Name: "Yoga Mat", Category: "Sports", Price: price("29.99"), Stock: 200, Description: "Non-slip yoga mat with alignment markings, 6mm thick, eco-friendly material."},
		{ID: "PROD-005", Name: "USB-C Hub", Category: "Electronics", Price: price("39.99"), Stock: 300, Description: "7-in-1 USB-C hub with HDMI, SD card reader, USB 3.0 ports and PD charging."},
		{ID: "PROD-006", Name: "Stainless Steel Water Bottle", Category: "Sports", Price: price("24.99"), Stock: 500, Description: "Vacuum-insulated 750ml water bottle, keeps drinks cold 24h or hot 12h."},
		{ID: "PROD-007", Name: "Noise-Canceling Headphones", Category: "Electronics", Price: price("199.99"), Stock: 60, Description: "Over-ear headphones with active noise cancellation, 30-hour battery life."},
		{ID: "PROD-008", Name: "Cast Iron Skillet", Category: "Home & Kitchen", Price: price("34.99"), Stock: 90, Description: "Pre-seasoned 12-inch cast iron skillet, oven-safe to 500°F."},
		{ID: "PROD-009", Name: "Backpack", Category: "Travel", Price: price("59.99"), Stock: 120, Description: "Water-resistant 30L travel backpack with laptop compartment and USB charging port."},
		{ID: "PROD-010", Name: "Desk Lamp", Category: "Home & Kitchen", Price: price("44.99"), Stock: 85, Description: "LED desk lamp with adjustable brightness, color temperature and wireless charging base."},
		{ID: "PROD-011", Name: "Portable Charger", Category: "Electronics", Price: price("29.99"), Stock: 400, Description: "20000mAh portable charger with dual USB-C ports and fast charging support."},
		{ID: "PROD-012", Name: "Travel Pillow", Category: "Travel", Price: price("19.99"), Stock: 250, Description: "Memory foam travel pillow with adjustable clasp and machine-washable cover."},
	}
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
