// Copyright (c) 2026 Agrio India. All rights reserved.

package client

import "time"

// # Wire Types
//
// These mirror the server's JSON shapes field for field.

// User is a platform account as the API renders it.
type User struct {
	ID              string     `json:"id"`
	Mobile          string     `json:"mobile"`
	FullName        string     `json:"full_name"`
	Email           string     `json:"email"`
	PinCode         string     `json:"pin_code"`
	State           string     `json:"state"`
	District        string     `json:"district"`
	Language        string     `json:"language"`
	Role            string     `json:"role"`
	IsActive        bool       `json:"is_active"`
	CropPreferences []string   `json:"crop_preferences,omitempty"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// LoginSession is the payload of a successful OTP verification.
type LoginSession struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IsNewUser    bool   `json:"is_new_user"`
	User         *User  `json:"user"`
}

// RefreshedSession is the payload of a successful token refresh.
type RefreshedSession struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// ProfileInput carries the editable profile fields.
type ProfileInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	PinCode  string `json:"pin_code"`
	State    string `json:"state,omitempty"`
	District string `json:"district,omitempty"`
	Language string `json:"language,omitempty"`
}

// Category is a product category.
type Category struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	NameHi    string `json:"name_hi"`
	SortOrder int    `json:"sort_order"`
}

// Product is a catalog product with its bilingual copy.
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
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Crop is a supported crop vertical.
type Crop struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	NameHi    string `json:"name_hi"`
	ImageURL  string `json:"image_url"`
	Season    string `json:"season"`
	SortOrder int    `json:"sort_order"`
}

// Distributor is a dealership point, optionally with its distance from the
// searched location.
type Distributor struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PinCode    string   `json:"pin_code"`
	Phone      string   `json:"phone"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// Reward is one entry in the farmer's points ledger.
type Reward struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CouponID  string    `json:"coupon_id"`
	ProductID string    `json:"product_id"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}

// RewardStats aggregates the farmer's scanning history.
type RewardStats struct {
	TotalPoints int        `json:"total_points"`
	TotalScans  int        `json:"total_scans"`
	LastScanAt  *time.Time `json:"last_scan_at,omitempty"`
}

// ContactInput is a message for the contact inbox.
type ContactInput struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// AdminAccount is a staff account as the API renders it.
type AdminAccount struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// StaffSession is the payload of a successful staff login.
type StaffSession struct {
	AccessToken string        `json:"access_token"`
	Admin       *AdminAccount `json:"admin"`
}

// PlatformStats is the admin dashboard aggregate.
type PlatformStats struct {
	TotalUsers      int `json:"total_users"`
	NewUsers30d     int `json:"new_users_30d"`
	TotalScans      int `json:"total_scans"`
	TotalPoints     int `json:"total_points"`
	ContactMessages int `json:"contact_messages"`
}

// Page bundles a listing with its pagination meta.
type Page[T any] struct {
	Items []T
	Meta  PageMeta
}

// PageMeta is the pagination block of a listing response.
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
