// Package catalog holds the product catalog supplying line-item data to the
// cart. The collection is small and fixed per release, so it ships compiled in
// rather than behind a database.
package catalog

import (
	"github.com/cfshr/aur/internal/domain"
	apperrors "github.com/cfshr/aur/pkg/errors"
	"github.com/cfshr/aur/pkg/pagination"
	"github.com/cfshr/aur/pkg/slug"
)

// Product is a sellable piece from the current collection. Prices are in EUR.
type Product struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Artist      string   `json:"artist"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Description string   `json:"description"`
	Details     []string `json:"details"`
	Image       string   `json:"image"`
	HoverImage  string   `json:"hover_image"`
}

// LineItem converts the product into a cart line item at the given quantity.
func (p Product) LineItem(quantity int) domain.LineItem {
	return domain.LineItem{
		ID:       p.ID,
		Name:     p.Name,
		Artist:   p.Artist,
		Price:    p.Price,
		Quantity: quantity,
		Image:    p.Image,
	}
}

// Catalog provides lookup over the product collection.
type Catalog struct {
	products []Product
	byID     map[string]int
	bySlug   map[string]int
}

// New creates a catalog over the given products, indexing them by ID and slug.
// Products without an explicit slug get one generated from their name.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: products,
		byID:     make(map[string]int, len(products)),
		bySlug:   make(map[string]int, len(products)),
	}
	for i := range c.products {
		if c.products[i].Slug == "" {
			c.products[i].Slug = slug.Generate(c.products[i].Name)
		}
		c.byID[c.products[i].ID] = i
		c.bySlug[c.products[i].Slug] = i
	}
	return c
}

// Default returns the catalog of the current collection.
func Default() *Catalog {
	return New(defaultProducts())
}

// ByID looks up a product by its stable identifier.
func (c *Catalog) ByID(id string) (Product, error) {
	if i, ok := c.byID[id]; ok {
		return c.products[i], nil
	}
	return Product{}, apperrors.NotFound("product", id)
}

// BySlug looks up a product by its URL slug.
func (c *Catalog) BySlug(s string) (Product, error) {
	if i, ok := c.bySlug[s]; ok {
		return c.products[i], nil
	}
	return Product{}, apperrors.NotFound("product", s)
}

// List returns one page of the collection in release order.
func (c *Catalog) List(params pagination.Params) pagination.Result[Product] {
	total := len(c.products)

	start := params.Offset
	if start > total {
		start = total
	}
	end := start + params.PerPage
	if end > total {
		end = total
	}

	page := make([]Product, end-start)
	copy(page, c.products[start:end])

	return pagination.NewResult(page, total, params)
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// defaultProducts is the current collection.
func defaultProducts() []Product {
	return []Product{
		{
			ID:       "cybohr",
			Name:     "Cybohr",
			Artist:   "Lucid Infusion",
			Price:    125,
			Currency: "EUR",
			Description: "The Cybohr piece represents the intersection of organic form and " +
				"technological innovation. Featuring a sculptural design that exposes the NFC " +
				"technology within, this piece celebrates the beauty of circuitry and connectivity.",
			Details: []string{
				"Sterling silver construction",
				"Integrated NFC chip for digital connectivity",
				"Hand-finished by master craftspeople",
				"Comes with authentication certificate",
			},
			Image:      "/images/cybohr-default.png",
			HoverImage: "/images/cybohr-hover.png",
		},
		{
			ID:       "pointer",
			Name:     "Pointer",
			Artist:   "Mistress Sybil",
			Price:    125,
			Currency: "EUR",
			Description: "Pointer is a bold statement ring that bridges the physical and digital " +
				"worlds. With its exposed NFC coil and transparent resin construction, it showcases " +
				"the technology that powers the connection.",
			Details: []string{
				"Sterling silver and resin construction",
				"Visible NFC antenna design",
				"Available in multiple ring sizes",
				"Waterproof and durable",
			},
			Image:      "/images/ring-default.png",
			HoverImage: "/images/ring-hover.png",
		},
		{
			ID:       "precious",
			Name:     "PrecIOus",
			Artist:   "Data Werkstadt",
			Price:    125,
			Currency: "EUR",
			Description: "PrecIOus is an elegant pendant that embodies the concept of data as " +
				"treasure. The twisted flame design holds the NFC component at its heart, " +
				"symbolizing the value of digital connection.",
			Details: []string{
				"Sterling silver pendant with chain",
				"Integrated NFC technology",
				"Adjustable chain length (16-18 inches)",
				"Ethically sourced materials",
			},
			Image:      "/images/precious-default.png",
			HoverImage: "/images/precious-hover.png",
		},
	}
}
