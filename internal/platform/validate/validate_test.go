// Copyright (c) 2026 Agrio India. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrioindia/platform/internal/platform/apperr"
	"github.com/agrioindia/platform/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Agrio", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Mobile checks the Indian mobile number rule.
*/
func TestValidator_Mobile(t *testing.T) {
	tests := []struct {
		name    string
		mobile  string
		isValid bool
	}{
		{"valid_9", "9876543210", true},
		{"valid_6", "6123456789", true},
		{"starts_with_5", "5123456789", false},
		{"too_short", "987654321", false},
		{"too_long", "98765432101", false},
		{"non_numeric", "98765x3210", false},
		{"with_country_code", "+919876543210", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Mobile("phone_number", tt.mobile)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Pincode checks the postal code rule.
*/
func TestValidator_Pincode(t *testing.T) {
	tests := []struct {
		name    string
		pincode string
		isValid bool
	}{
		{"valid", "203205", true},
		{"leading_zero", "020320", false},
		{"too_short", "20320", false},
		{"too_long", "2032051", false},
		{"non_numeric", "20320x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Pincode("pin_code", tt.pincode)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Digits checks fixed-length digit strings (OTP codes).
*/
func TestValidator_Digits(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		length  int
		isValid bool
	}{
		{"valid_otp", "1234", 4, true},
		{"leading_zero", "0042", 4, true},
		{"too_short", "123", 4, false},
		{"too_long", "12345", 4, false},
		{"non_numeric", "12a4", 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Digits("code", tt.value, tt.length)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("full_name", "Ravi Kumar").
		MinLen("full_name", "Ravi Kumar", 2).
		Mobile("phone_number", "9876543210").
		Pincode("pin_code", "203205").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("full_name", "").        // Fails
		Mobile("phone_number", "512345"). // Fails
		Pincode("pin_code", "03205").     // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
