package models

import "time"

// Categories an item can be filed under.
var Categories = []string{"Top", "Bottom", "Outerwear", "Shoes", "Accessory", "Other"}

// Seasons an item can be worn in. "All" is the default.
var Seasons = []string{"All", "Spring", "Summer", "Autumn", "Winter"}

// Colors is the palette offered to the client. Color stays a free string.
var Colors = []string{"Black", "White", "Gray", "Navy", "Blue", "Green", "Brown", "Beige"}

// OutfitSlots are the categories outfit generation fills, in display order.
var OutfitSlots = []string{"Top", "Bottom", "Shoes", "Outerwear", "Accessory"}

type ClosetItem struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Category  string           `json:"category"`
	Color     string           `json:"color"`
	Season    string           `json:"season"`
	Barcode   string           `json:"barcode"`
	Notes     string           `json:"notes"`
	ImageURI  string           `json:"imageUri"`
	CreatedAt time.Time        `json:"createdAt"`
	Product   *ProductSnapshot `json:"product"`
}

// ProductSnapshot is the purchase info copied from a picked ProductResult.
type ProductSnapshot struct {
	Name        string   `json:"name"`
	Brand       *string  `json:"brand"`
	Price       *float64 `json:"price"`
	PurchaseURL string   `json:"purchaseUrl"`
	JANCode     *string  `json:"janCode"`
	Source      string   `json:"source"`
}

type Outfit struct {
	ID        string                `json:"id"`
	CreatedAt time.Time             `json:"createdAt"`
	Items     map[string]ClosetItem `json:"items"`
}

func IsCategory(value string) bool {
	return contains(Categories, value)
}

func IsSeason(value string) bool {
	return contains(Seasons, value)
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
