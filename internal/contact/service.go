// Copyright (c) 2026 Agrio India. All rights reserved.

package contact

import (
	"context"
	"fmt"

	"github.com/agrioindia/platform/pkg/pagination"
	"github.com/agrioindia/platform/pkg/uuid"
)

// Service implements the enquiry inbox use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// Submit stores a new enquiry and returns it with its assigned ID.
func (service *Service) Submit(context context.Context, message *Message) (*Message, error) {
	message.ID = uuid.New()

	if err := service.repository.Create(context, message); err != nil {
		return nil, fmt.Errorf("contact_service_submit_failed: %w", err)
	}

	return message, nil
}

// Inbox returns one page of enquiries, newest first.
func (service *Service) Inbox(context context.Context, params pagination.Params) ([]*Message, int, error) {
	return service.repository.List(context, params)
}
