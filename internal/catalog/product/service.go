// Copyright (c) 2026 Agrio India. All rights reserved.

package product

import (
	"context"

	"github.com/agrioindia/platform/pkg/pagination"
	"github.com/agrioindia/platform/pkg/slug"
)

// Service implements catalog browsing use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
List returns one page of the catalog with a pagination total.

Parameters:
  - context: context.Context
  - filter: Filter

Returns:
  - []*Product: One page of products
  - int: Total matching rows
  - err: Storage failures
*/
func (service *Service) List(context context.Context, filter Filter) ([]*Product, int, error) {
	return service.repository.List(context, filter)
}

/*
BestSellers returns the curated best-seller shelf.

Description: A fixed-size shelf for the home page, so pagination is pinned
to the first page.

Parameters:
  - context: context.Context
  - limit: int

Returns:
  - []*Product: The shelf contents
  - err: Storage failures
*/
func (service *Service) BestSellers(context context.Context, limit int) ([]*Product, error) {
	products, _, err := service.repository.List(context, Filter{
		BestSellers: true,
		Pagination:  pagination.Params{Page: 1, Limit: limit},
	})
	return products, err
}

/*
GetBySlug resolves a single product for its detail page.

Description: The slug is normalized before lookup so links pasted with odd
casing or stray diacritics still resolve.

Parameters:
  - context: context.Context
  - rawSlug: string

Returns:
  - *Product: Hydrated entity
  - err: NotFound or storage failures
*/
func (service *Service) GetBySlug(context context.Context, rawSlug string) (*Product, error) {
	return service.repository.GetBySlug(context, slug.From(rawSlug))
}

/*
Categories returns every category ordered for display.

Parameters:
  - context: context.Context

Returns:
  - []*Category: Categories in sort order
  - err: Storage failures
*/
func (service *Service) Categories(context context.Context) ([]*Category, error) {
	return service.repository.ListCategories(context)
}
