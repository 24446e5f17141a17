package domain

type Category string

const (
	CategoryStandard   Category = "standard"
	CategoryVegan      Category = "vegan"
	CategoryGlutenFree Category = "gluten-free"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryStandard, CategoryVegan, CategoryGlutenFree:
		return true
	}
	return false
}

// Product is an immutable catalog record. Identity is the ID.
// Available is advisory: the cart does not refuse unavailable products,
// filtering them out is a presentation concern.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       Money    `json:"price"`
	Image       string   `json:"image"`
	Category    Category `json:"category"`
	Available   bool     `json:"available"`
}
