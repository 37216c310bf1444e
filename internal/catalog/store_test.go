package catalog

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func sampleStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(SampleProducts())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestStore_FindByID_CaseInsensitive(t *testing.T) {
	s := sampleStore(t)

	for _, p := range s.All() {
		for _, id := range []string{p.ID, strings.ToLower(p.ID), strings.ToUpper(p.ID)} {
			got, ok := s.FindByID(id)
			if !ok {
				t.Fatalf("FindByID(%q) not found", id)
			}
			if got != p {
				t.Fatalf("FindByID(%q)=%+v want=%+v", id, got, p)
			}
		}
	}
}

func TestStore_FindByID_Absent(t *testing.T) {
	s := sampleStore(t)

	for _, id := range []string{"PROD-999", "", "   ", "PROD-00"} {
		if _, ok := s.FindByID(id); ok {
			t.Fatalf("FindByID(%q) unexpectedly found", id)
		}
	}
}

func TestStore_Categories(t *testing.T) {
	s := sampleStore(t)

	got := s.Categories()
	want := []string{"Electronics", "Home & Kitchen", "Sports", "Travel"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("categories=%v want=%v", got, want)
	}

	if !sort.StringsAreSorted(got) {
		t.Fatalf("categories not sorted: %v", got)
	}

	all := map[string]bool{}
	for _, p := range s.All() {
		all[p.Category] = true
	}
	if len(all) != len(got) {
		t.Fatalf("distinct=%d categories=%d", len(all), len(got))
	}
	for _, c := range got {
		if !all[c] {
			t.Fatalf("category %q not in catalog", c)
		}
	}
}

func TestStore_Categories_ReturnsCopy(t *testing.T) {
	s := sampleStore(t)

	c := s.Categories()
	c[0] = "Mutated"

	if s.Categories()[0] != "Electronics" {
		t.Fatalf("store categories mutated through returned slice")
	}
}

func TestStore_FilterByCategory(t *testing.T) {
	s := sampleStore(t)

	got := s.FilterByCategory("sPoRtS")
	ids := make([]string, len(got))
	for i, p := range got {
		ids[i] = p.ID
	}
	if strings.Join(ids, ",") != "PROD-002,PROD-004,PROD-006" {
		t.Fatalf("ids=%v", ids)
	}

	for _, c := range []string{"Garden", "", "Sport", " "} {
		got := s.FilterByCategory(c)
		if got == nil || len(got) != 0 {
			t.Fatalf("FilterByCategory(%q)=%v want empty", c, got)
		}
	}
}

func TestStore_Search(t *testing.T) {
	s := sampleStore(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"keyboard", []string{"PROD-001"}},
		{"KEYBOARD", []string{"PROD-001"}},
		{"bottle", []string{"PROD-006"}},
		{"usb", []string{"PROD-005", "PROD-009", "PROD-011"}},
		{"travel", []string{"PROD-009", "PROD-012"}},
		{"submarine", nil},
		{"", nil},
		{"  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := s.Search(tt.query)
			ids := make([]string, len(got))
			for i, p := range got {
				ids[i] = p.ID
			}
			if strings.Join(ids, ",") != strings.Join(tt.want, ",") {
				t.Fatalf("Search(%q)=%v want=%v", tt.query, ids, tt.want)
			}
		})
	}
}

func TestNewStore_Validation(t *testing.T) {
	ok := Product{ID: "A-1", Name: "A", Category: "X", Price: decimal.NewFromInt(1), Stock: 1}

	tests := []struct {
		name     string
		products []Product
	}{
		{"empty", nil},
		{"blank id", []Product{{ID: " ", Category: "X"}}},
		{"duplicate id", []Product{ok, {ID: "a-1", Category: "Y"}}},
		{"negative price", []Product{{ID: "B", Price: decimal.NewFromInt(-1)}}},
		{"negative stock", []Product{{ID: "B", Stock: -3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStore(tt.products)
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("err=%v want ErrInvalidCatalog", err)
			}
		})
	}
}

func TestNewStore_CopiesInput(t *testing.T) {
	in := SampleProducts()
	s, err := NewStore(in)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	in[0].Name = "Changed"
	if p, _ := s.FindByID("PROD-001"); p.Name != "Wireless Keyboard" {
		t.Fatalf("store observed caller mutation: %q", p.Name)
	}
}

func TestProduct_MarshalJSON(t *testing.T) {
	p := Product{ID: "PROD-003", Name: "Coffee Maker", Category: "Home & Kitchen", Price: decimal.RequireFromString("129.99"), Stock: 40, Description: "d"}

	b, err := p.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"id":"PROD-003","name":"Coffee Maker","category":"Home & Kitchen","price":129.99,"stock":40,"description":"d"}`
	if string(b) != want {
		t.Fatalf("json=%s want=%s", b, want)
	}
}
