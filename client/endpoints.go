// Copyright (c) 2026 Agrio India. All rights reserved.

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// # Paginated Transport

// pageEnvelope mirrors the server's paginated response shape.
type pageEnvelope[T any] struct {
	Success bool       `json:"success"`
	Data    []T        `json:"data"`
	Meta    PageMeta   `json:"meta"`
	Error   *errorBody `json:"error"`
}

// getPage performs a GET against a paginated listing endpoint.
func getPage[T any](ctx context.Context, c *Client, path string, query url.Values) Result[Page[T]] {
	status, rawBody, transportErr := c.roundTrip(ctx, http.MethodGet, path, query, nil)
	if transportErr != nil {
		return failure[Page[T]](transportErr)
	}

	var parsed pageEnvelope[T]
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		return failure[Page[T]](&APIError{
			Status:  status,
			Code:    CodeBadPayload,
			Message: fmt.Sprintf("unexpected response (HTTP %d)", status),
		})
	}

	if status >= 200 && status < 300 && parsed.Success {
		return success(Page[T]{Items: parsed.Data, Meta: parsed.Meta})
	}

	return failure[Page[T]](foldError(status, parsed.Error))
}

func pageQuery(page, limit int) url.Values {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return query
}

// # Auth Endpoints

// SendOTP requests a one-time code for the given mobile number.
func (c *Client) SendOTP(ctx context.Context, mobile string) Result[struct{}] {
	return post[struct{}](ctx, c, "/auth/send-otp", map[string]string{"mobile": mobile})
}

// VerifyOTP exchanges a mobile number and its one-time code for a session.
//
// The returned tokens are handed back to the caller, not stored; wiring them
// into the [TokenStore] is the session layer's job.
func (c *Client) VerifyOTP(ctx context.Context, mobile, otp string) Result[LoginSession] {
	return post[LoginSession](ctx, c, "/auth/verify-otp", map[string]string{
		"mobile": mobile,
		"otp":    otp,
	})
}

// RefreshSession rotates the token pair using the stored refresh token.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) Result[RefreshedSession] {
	return post[RefreshedSession](ctx, c, "/auth/refresh", map[string]string{
		"refresh_token": refreshToken,
	})
}

// Logout revokes the session behind refreshToken. Revoking an unknown or
// already revoked token still succeeds.
func (c *Client) Logout(ctx context.Context, refreshToken string) Result[struct{}] {
	return post[struct{}](ctx, c, "/auth/logout", map[string]string{
		"refresh_token": refreshToken,
	})
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) Result[User] {
	return get[User](ctx, c, "/auth/profile", nil)
}

// UpdateProfile saves the editable profile fields.
func (c *Client) UpdateProfile(ctx context.Context, input ProfileInput) Result[User] {
	return put[User](ctx, c, "/auth/profile", input)
}

type cropsPayload struct {
	Crops []string `json:"crops"`
}

// CropPreferences fetches the authenticated user's selected crop IDs.
func (c *Client) CropPreferences(ctx context.Context) Result[[]string] {
	result := get[cropsPayload](ctx, c, "/auth/crop-preferences", nil)
	if !result.OK {
		return failure[[]string](result.Err)
	}
	return success(result.Data.Crops)
}

// SyncCropPreferences replaces the user's crop selection wholesale.
func (c *Client) SyncCropPreferences(ctx context.Context, cropIDs []string) Result[[]string] {
	result := put[cropsPayload](ctx, c, "/auth/crop-preferences", cropsPayload{Crops: cropIDs})
	if !result.OK {
		return failure[[]string](result.Err)
	}
	return success(result.Data.Crops)
}

// # Catalog Endpoints

// ProductFilter narrows a product listing.
type ProductFilter struct {
	CategorySlug string
	Search       string
	Page         int
	Limit        int
}

// Products lists catalog products with optional filtering.
func (c *Client) Products(ctx context.Context, filter ProductFilter) Result[Page[Product]] {
	query := pageQuery(filter.Page, filter.Limit)
	if filter.CategorySlug != "" {
		query.Set("category", filter.CategorySlug)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	return getPage[Product](ctx, c, "/products", query)
}

// BestSellers fetches the best-seller shelf.
func (c *Client) BestSellers(ctx context.Context) Result[[]Product] {
	return get[[]Product](ctx, c, "/products/best-sellers", nil)
}

// Product fetches one product by its URL slug.
func (c *Client) Product(ctx context.Context, slug string) Result[Product] {
	return get[Product](ctx, c, "/products/"+url.PathEscape(slug), nil)
}

// Categories lists the product categories in display order.
func (c *Client) Categories(ctx context.Context) Result[[]Category] {
	return get[[]Category](ctx, c, "/categories", nil)
}

// Crops lists the supported crops in display order.
func (c *Client) Crops(ctx context.Context) Result[[]Crop] {
	return get[[]Crop](ctx, c, "/crops", nil)
}

// CropBySlug fetches one crop by its URL slug.
func (c *Client) CropBySlug(ctx context.Context, slug string) Result[Crop] {
	return get[Crop](ctx, c, "/crops/"+url.PathEscape(slug), nil)
}

// # Distributor Endpoints

// DistributorsByPinCode lists dealers serving a postal code.
func (c *Client) DistributorsByPinCode(ctx context.Context, pinCode string) Result[[]Distributor] {
	query := url.Values{}
	query.Set("pincode", pinCode)

	return get[[]Distributor](ctx, c, "/distributors", query)
}

// DistributorsNearby lists dealers within radiusKm of a coordinate. A zero
// radius asks the server for its default.
func (c *Client) DistributorsNearby(ctx context.Context, latitude, longitude, radiusKm float64) Result[[]Distributor] {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	query.Set("lng", strconv.FormatFloat(longitude, 'f', -1, 64))
	if radiusKm > 0 {
		query.Set("radius_km", strconv.FormatFloat(radiusKm, 'f', -1, 64))
	}

	return get[[]Distributor](ctx, c, "/distributors", query)
}

// # Rewards Endpoints

// ScanCoupon redeems a QR coupon code for the authenticated farmer.
func (c *Client) ScanCoupon(ctx context.Context, code string) Result[Reward] {
	return post[Reward](ctx, c, "/rewards/scan", map[string]string{"code": code})
}

// Rewards pages through the farmer's points ledger, newest first.
func (c *Client) Rewards(ctx context.Context, page, limit int) Result[Page[Reward]] {
	return getPage[Reward](ctx, c, "/rewards", pageQuery(page, limit))
}

// RewardStats fetches the farmer's aggregate points and scan counts.
func (c *Client) RewardStats(ctx context.Context) Result[RewardStats] {
	return get[RewardStats](ctx, c, "/rewards/stats", nil)
}

// # Contact Endpoint

// SubmitContact files a message to the contact inbox.
func (c *Client) SubmitContact(ctx context.Context, input ContactInput) Result[struct{}] {
	return post[struct{}](ctx, c, "/contact", input)
}

// # Admin Endpoints

// AdminLogin authenticates a staff account with email and password.
func (c *Client) AdminLogin(ctx context.Context, email, password string) Result[StaffSession] {
	return post[StaffSession](ctx, c, "/admin/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// AdminStats fetches the dashboard aggregate. Requires a staff session.
func (c *Client) AdminStats(ctx context.Context) Result[PlatformStats] {
	return get[PlatformStats](ctx, c, "/admin/stats", nil)
}

// AdminUsers pages through registered farmer accounts, newest first.
func (c *Client) AdminUsers(ctx context.Context, page, limit int) Result[Page[User]] {
	return getPage[User](ctx, c, "/admin/users", pageQuery(page, limit))
}
