package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

// Store is an immutable, ordered product collection. It is built once and
// shared by all callers without locking.
type Store struct {
	products   []Product
	categories []string
}

func NewStore(products []Product) (*Store, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: no products", ErrInvalidCatalog)
	}

	seen := make(map[string]int, len(products))
	cats := make(map[string]struct{})

	for i, p := range products {
		if isBlank(p.ID) {
			return nil, fmt.Errorf("%w: product #%d has no id", ErrInvalidCatalog, i)
		}

		key := strings.ToUpper(p.ID)
		if j, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q (products #%d and #%d)", ErrInvalidCatalog, p.ID, j, i)
		}
		seen[key] = i

		if p.Price.IsNegative() {
			return nil, fmt.Errorf("%w: product %q has negative price", ErrInvalidCatalog, p.ID)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("%w: product %q has negative stock", ErrInvalidCatalog, p.ID)
		}

		cats[p.Category] = struct{}{}
	}

	categories := make([]string, 0, len(cats))
	for c := range cats {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	return &Store{
		products:   append([]Product(nil), products...),
		categories: categories,
	}, nil
}

func (s *Store) Len() int { return len(s.products) }

// All returns the products in load order.
func (s *Store) All() []Product {
	return append([]Product(nil), s.products...)
}

func (s *Store) FindByID(id string) (Product, bool) {
	if isBlank(id) {
		return Product{}, false
	}
	for _, p := range s.products {
		if strings.EqualFold(p.ID, id) {
			return p, true
		}
	}
	return Product{}, false
}

func (s *Store) FilterByCategory(category string) []Product {
	out := []Product{}
	if isBlank(category) {
		return out
	}
	for _, p := range s.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out
}

// Search matches text as a case-insensitive substring of name or description.
func (s *Store) Search(text string) []Product {
	out := []Product{}
	if isBlank(text) {
		return out
	}

	needle := strings.ToLower(text)
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct category labels, sorted ascending.
func (s *Store) Categories() []string {
	return append([]string(nil), s.categories...)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
