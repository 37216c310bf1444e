package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// FileSource reads a product list from a JSON (.json) or YAML file.
// The document is either a bare list or an object with a "products" key.
type FileSource struct {
	Path string
}

type fileRecord struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category" yaml:"category"`
	Price       any    `json:"price" yaml:"price"`
	Stock       int    `json:"stock" yaml:"stock"`
	Description string `json:"description" yaml:"description"`
}

type fileDocument struct {
	Products []fileRecord `json:"products" yaml:"products"`
}

func (f FileSource) Load(context.Context) ([]Product, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var records []fileRecord
	ext := strings.ToLower(filepath.Ext(f.Path))
	switch ext {
	case ".json":
		records, err = decodeRecords(data, json.Unmarshal)
		if err != nil {
			return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
		}
	default:
		records, err = decodeRecords(data, yaml.Unmarshal)
		if err != nil {
			return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
		}
	}

	products := make([]Product, 0, len(records))
	for i, r := range records {
		p, err := r.product()
		if err != nil {
			return nil, fmt.Errorf("product #%d: %w", i, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func decodeRecords(data []byte, unmarshal func([]byte, any) error) ([]fileRecord, error) {
	var records []fileRecord
	if err := unmarshal(data, &records); err == nil {
		return records, nil
	}

	var doc fileDocument
	if err := unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Products, nil
}

func (r fileRecord) product() (Product, error) {
	raw := cast.ToString(r.Price)
	if raw == "" {
		raw = "0"
	}
	p, err := decimal.NewFromString(raw)
	if err != nil {
		return Product{}, fmt.Errorf("%w: bad price %v for %q", ErrInvalidCatalog, r.Price, r.ID)
	}

	return Product{
		ID:          r.ID,
		Name:        r.Name,
		Category:    r.Category,
		Price:       p,
		Stock:       r.Stock,
		Description: r.Description,
	}, nil
}
