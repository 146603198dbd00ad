package models

import "time"

// Weight is the net weight of a product, e.g. {250, "g"}.
type Weight struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type Product struct {
	ID                   string    `json:"_id,omitempty"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	Brand                string    `json:"brand"`
	Category             string    `json:"category"`
	Price                float64   `json:"price"`
	OriginalPrice        float64   `json:"originalPrice"`
	Stock                int       `json:"stock"`
	Dosage               string    `json:"dosage"`
	InStock              bool      `json:"inStock"`
	IsFeatured           bool      `json:"isFeatured"`
	RequiresPrescription bool      `json:"requiresPrescription"`
	Weight               Weight    `json:"weight"`
	Ingredients          []string  `json:"ingredients"`
	Tags                 []string  `json:"tags"`
	MainImage            string    `json:"mainImage"`
	Images               []string  `json:"images"`
	CreatedAt            time.Time `json:"createdAt,omitempty"`
	UpdatedAt            time.Time `json:"updatedAt,omitempty"`
}

type Category struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    bool   `json:"isActive"`
}

// Banner is a home-page carousel entry.
type Banner struct {
	ID       string `json:"_id,omitempty"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Image    string `json:"image"`
	Link     string `json:"link"`
	Position int    `json:"position"`
	IsActive bool   `json:"isActive"`
}
