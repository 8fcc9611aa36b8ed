// Copyright (c) 2026 Agrio India. All rights reserved.

package product

import (
	"context"

	"github.com/agrioindia/platform/pkg/pagination"
)

// Filter narrows a catalog listing.
type Filter struct {
	CategorySlug string
	Search       string
	BestSellers  bool
	Pagination   pagination.Params
}

// Repository defines the data access contract for the product catalog.
type Repository interface {

	/*
		List returns active products matching the filter plus the unpaginated total.

		Parameters:
		  - context: context.Context
		  - filter: Filter

		Returns:
		  - []*Product: One page of products
		  - int: Total matching rows across all pages
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter) ([]*Product, int, error)

	/*
		GetBySlug returns the active product with the given slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Product: Hydrated entity including its category
		  - error: apperr.NotFound or database errors
	*/
	GetBySlug(context context.Context, slug string) (*Product, error)

	/*
		ListCategories returns every category ordered for display.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Category: Categories in sort order
		  - error: Database retrieval failures
	*/
	ListCategories(context context.Context) ([]*Category, error)
}
