package domain

// Feed categories are free-text by design (sellers can list "other" feeds),
// but the catalog filters on this known set.
const (
	CategoryPoultry = "poultry"
	CategoryCattle  = "cattle"
	CategoryPig     = "pig"
	CategoryFish    = "fish"
	CategoryOther   = "other"
)

func KnownCategory(c string) bool {
	switch c {
	case CategoryPoultry, CategoryCattle, CategoryPig, CategoryFish, CategoryOther:
		return true
	}
	return false
}

type Product struct {
	ID              int64   `db:"id" json:"id"`
	SellerID        int64   `db:"seller_id" json:"sellerId"`
	Name            string  `db:"name" json:"name"`
	Description     string  `db:"description" json:"description"`
	Price           float64 `db:"price" json:"price"`
	Category        string  `db:"category" json:"category"`
	Stock           int     `db:"stock" json:"stock"`
	Image           string  `db:"image" json:"image,omitempty"`
	Weight          string  `db:"weight" json:"weight,omitempty"`
	Brand           string  `db:"brand" json:"brand,omitempty"`
	Ingredients     string  `db:"ingredients" json:"ingredients,omitempty"`
	NutritionalInfo string  `db:"nutritional_info" json:"nutritionalInfo,omitempty"`
	Certificate     string  `db:"certificate" json:"certificate,omitempty"`
	CreatedAt       string  `db:"created_at" json:"createdAt"`
	UpdatedAt       string  `db:"updated_at" json:"updatedAt,omitempty"`
}

// RatingSummary is attached to catalog detail views.
type RatingSummary struct {
	Average float64 `db:"average" json:"average"`
	Count   int     `db:"count" json:"count"`
}
