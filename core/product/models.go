package product

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/trezcool/lotus/core"
)

// DefaultPageSize is the number of products requested when listing the catalog.
const DefaultPageSize = 10

// Product is a catalog record as returned by the remote product service.
// ID is 0 until the record has been persisted.
type Product struct {
	ID          int     `json:"id,omitempty"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description,omitempty"`
}

// Candidate is a user-edited, not yet validated Product payload (without ID).
type Candidate struct {
	Title       string `json:"title" validate:"product_title"`
	Price       Price  `json:"price" validate:"product_price"`
	Image       string `json:"image" validate:"product_image"`
	Description string `json:"description,omitempty"`
}

// CandidateOf returns the editable payload of p.
func CandidateOf(p Product) Candidate {
	return Candidate{
		Title:       p.Title,
		Price:       Price(p.Price),
		Image:       p.Image,
		Description: p.Description,
	}
}

// Clean returns a copy of c with whitespace trimmed from its text fields.
func (c Candidate) Clean() Candidate {
	c.Title = core.CleanString(c.Title)
	c.Image = core.CleanString(c.Image)
	c.Description = core.CleanString(c.Description)
	return c
}

// Price is a form price input. It decodes from a JSON number or a numeric string;
// anything else is coerced to 0, which is displayed but never accepted as valid.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*p = 0
		return nil
	}
	switch v := raw.(type) {
	case float64:
		*p = Price(v)
	case string:
		*p = ParsePrice(v)
	default:
		*p = 0
	}
	return nil
}

// ParsePrice parses a raw price input. Non-numeric input and values
// out of the float64 range yield 0.
func ParsePrice(s string) Price {
	d, err := decimal.NewFromString(core.CleanString(s))
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return Price(f)
}

// FormatPrice renders a price for display, eg. "$12.50".
func FormatPrice(price float64) string {
	return "$" + decimal.NewFromFloat(price).StringFixed(2)
}

// FormatID renders a product ID for display.
func FormatID(id int) string {
	return "#" + strconv.Itoa(id)
}
