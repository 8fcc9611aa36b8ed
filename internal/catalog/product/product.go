// Copyright (c) 2026 Agrio India. All rights reserved.

/*
Package product implements the agrochemical catalog domain.

It defines the bilingual product and category entities shown on the marketing
site, including best-seller curation.

# Architecture

Entities defined here have no external dependencies and encapsulate all
business rules related to the catalog.
*/
package product

import "time"

// # Domain Entities

// Category groups products into the shop's browsing sections.
type Category struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	NameHi    string    `json:"name_hi"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"-"`
}

// Product represents a sellable agrochemical item.
//
// Name and Description carry the English copy; the Hi variants carry the
// Hindi copy. Clients pick one based on the farmer's language setting.
type Product struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	NameHi        string    `json:"name_hi"`
	Description   string    `json:"description"`
	DescriptionHi string    `json:"description_hi"`
	CategoryID    string    `json:"category_id"`
	Category      *Category `json:"category,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	PackSizes     []string  `json:"pack_sizes"`
	Price         float64   `json:"price"`
	IsBestSeller  bool      `json:"is_best_seller"`
	IsActive      bool      `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
