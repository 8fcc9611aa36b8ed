// Copyright (c) 2026 Agrio India. All rights reserved.

package contact

import (
	"context"

	"github.com/agrioindia/platform/pkg/pagination"
)

// Repository defines the data access contract for enquiries.
type Repository interface {
	Create(context context.Context, message *Message) error
	List(context context.Context, params pagination.Params) ([]*Message, int, error)
	Count(context context.Context) (int, error)
}
