package domain

import "time"

type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	Active    bool   `json:"active"`
}

type MenuItem struct {
	ID          string  `json:"id"`
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Available   bool    `json:"available"`
	SortOrder   int     `json:"sort_order"`

	// Variants is filled by the menu join and is never nil in MenuData.
	Variants []Variant `json:"variants"`
}

type Variant struct {
	ID            string  `json:"id"`
	MenuItemID    string  `json:"menu_item_id"`
	ProteinTypeID string  `json:"protein_type_id,omitempty"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
}

type ProteinType struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type Customization struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Group      string  `json:"group"`
	Price      float64 `json:"price"`
	MenuItemID string  `json:"menu_item_id,omitempty"`
}

// MenuData is everything a menu screen needs in one payload.
type MenuData struct {
	Categories     []Category      `json:"categories"`
	Items          []MenuItem      `json:"items"`
	ProteinTypes   []ProteinType   `json:"protein_types"`
	Customizations []Customization `json:"customizations"`
	Warnings       []string        `json:"warnings,omitempty"`
}

// PublishMarker is the well-known record bumped by the admin panel on every menu publish.
type PublishMarker struct {
	PublishedAt time.Time `json:"published_at"`
}
