package catalog

const (
	OpGetCategories         = "get_categories"
	OpGetProductsByCategory = "get_products_by_category"
	OpGetProduct            = "get_product"
	OpSearchProducts        = "search_products"
	OpCheckStock            = "check_stock"
)

type StockReport struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Status    string `json:"status"`
}

func operations() []Operation {
	return []Operation{
		{
			Name:        OpGetCategories,
			Description: "Get list of all product categories available in the catalog.",
			run:         getCategories,
		},
		{
			Name:        OpGetProductsByCategory,
			Description: "Get all products in a given category. Use get_categories first to see available categories.",
			Params:      []Param{{Name: "category", Description: "Category name, matched case-insensitively."}},
			run:         getProductsByCategory,
		},
		{
			Name:        OpGetProduct,
			Description: "Get detailed information for a specific product by its ID (e.g., PROD-001).",
			Params:      []Param{{Name: "product_id", Description: "Product ID, e.g. PROD-001."}},
			run:         getProduct,
		},
		{
			Name:        OpSearchProducts,
			Description: "Search products by name or description. Returns matching products.",
			Params:      []Param{{Name: "query", Description: "Text to look for in product names and descriptions."}},
			run:         searchProducts,
		},
		{
			Name:        OpCheckStock,
			Description: "Check the stock availability of a product by its ID.",
			Params:      []Param{{Name: "product_id", Description: "Product ID, e.g. PROD-001."}},
			run:         checkStock,
		},
	}
}

func getCategories(s *Store, _ Args) (Result, error) {
	return found(s.Categories())
}

func getProductsByCategory(s *Store, args Args) (Result, error) {
	category := args.String("category")

	products := s.FilterByCategory(category)
	if len(products) == 0 {
		return guidance("No products found in category '%s'. Use get_categories to see available categories.", category)
	}
	return found(products)
}

func getProduct(s *Store, args Args) (Result, error) {
	id := args.String("product_id")

	p, ok := s.FindByID(id)
	if !ok {
		return guidance("Product '%s' not found. Use search_products to find valid product IDs.", id)
	}
	return found(p)
}

func searchProducts(s *Store, args Args) (Result, error) {
	query := args.String("query")

	products := s.Search(query)
	if len(products) == 0 {
		return guidance("No products found matching '%s'.", query)
	}
	return found(products)
}

func checkStock(s *Store, args Args) (Result, error) {
	id := args.String("product_id")

	p, ok := s.FindByID(id)
	if !ok {
		return guidance("Product '%s' not found.", id)
	}
	return found(StockReport{
		ProductID: p.ID,
		Name:      p.Name,
		Stock:     p.Stock,
		Status:    p.StockStatus(),
	})
}
