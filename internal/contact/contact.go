// Copyright (c) 2026 Agrio India. All rights reserved.

// Package contact implements the enquiry inbox behind the contact form.
package contact

import "time"

// Message is one submitted enquiry.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	Email     string    `json:"email,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
