// Copyright (c) 2026 Agrio India. All rights reserved.

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrioindia/platform/internal/platform/apperr"
	"github.com/agrioindia/platform/internal/platform/sec"
	"github.com/agrioindia/platform/internal/users/auth"
)

// # In-Memory Fakes

type fakeUserRepository struct {
	usersByID     map[string]*auth.User
	usersByMobile map[string]*auth.User
	cropsByUser   map[string][]string
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		usersByID:     map[string]*auth.User{},
		usersByMobile: map[string]*auth.User{},
		cropsByUser:   map[string][]string{},
	}
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repo.usersByID[id]
	if !ok {
		return nil, apperr.NotFound("User not found")
	}
	copied := *user
	return &copied, nil
}

func (repo *fakeUserRepository) FindByMobile(_ context.Context, mobile string) (*auth.User, error) {
	user, ok := repo.usersByMobile[mobile]
	if !ok {
		return nil, apperr.NotFound("User not found with this mobile number")
	}
	copied := *user
	return &copied, nil
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	copied := *user
	repo.usersByID[user.ID] = &copied
	repo.usersByMobile[user.Mobile] = &copied
	return nil
}

func (repo *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	stored, ok := repo.usersByID[user.ID]
	if !ok {
		return apperr.NotFound("User not found")
	}
	*stored = *user
	return nil
}

func (repo *fakeUserRepository) TouchLastLogin(_ context.Context, userID string) error {
	if stored, ok := repo.usersByID[userID]; ok {
		now := time.Now()
		stored.LastLoginAt = &now
	}
	return nil
}

func (repo *fakeUserRepository) CropPreferences(_ context.Context, userID string) ([]string, error) {
	return repo.cropsByUser[userID], nil
}

func (repo *fakeUserRepository) ReplaceCropPreferences(_ context.Context, userID string, cropIDs []string) error {
	repo.cropsByUser[userID] = cropIDs
	return nil
}

type fakeSessionRepository struct {
	sessionsByHash map[string]*auth.Session
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessionsByHash: map[string]*auth.Session{}}
}

func (repo *fakeSessionRepository) Create(_ context.Context, session *auth.Session) error {
	copied := *session
	repo.sessionsByHash[session.TokenHash] = &copied
	return nil
}

func (repo *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	session, ok := repo.sessionsByHash[tokenHash]
	if !ok || session.IsRevoked || session.ExpiresAt.Before(time.Now()) {
		return nil, apperr.NotFound("Session not found or expired")
	}
	copied := *session
	return &copied, nil
}

func (repo *fakeSessionRepository) Revoke(_ context.Context, sessionID string) error {
	for _, session := range repo.sessionsByHash {
		if session.ID == sessionID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (repo *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	for _, session := range repo.sessionsByHash {
		if session.UserID == userID {
			session.IsRevoked = true
		}
	}
	return nil
}

func (repo *fakeSessionRepository) DeleteExpired(_ context.Context) error { return nil }

type fakeOTPRepository struct {
	codes    map[string]string
	sends    map[string]int64
	attempts map[string]int64
}

func newFakeOTPRepository() *fakeOTPRepository {
	return &fakeOTPRepository{
		codes:    map[string]string{},
		sends:    map[string]int64{},
		attempts: map[string]int64{},
	}
}

func (repo *fakeOTPRepository) SetCode(_ context.Context, mobile, code string, _ time.Duration) error {
	repo.codes[mobile] = code
	return nil
}

func (repo *fakeOTPRepository) GetCode(_ context.Context, mobile string) (string, error) {
	code, ok := repo.codes[mobile]
	if !ok {
		return "", apperr.OTPExpired()
	}
	return code, nil
}

func (repo *fakeOTPRepository) DeleteCode(_ context.Context, mobile string) error {
	delete(repo.codes, mobile)
	return nil
}

func (repo *fakeOTPRepository) IncrementSends(_ context.Context, mobile string, _ time.Duration) (int64, error) {
	repo.sends[mobile]++
	return repo.sends[mobile], nil
}

func (repo *fakeOTPRepository) IncrementAttempts(_ context.Context, mobile string, _ time.Duration) (int64, error) {
	repo.attempts[mobile]++
	return repo.attempts[mobile], nil
}

func (repo *fakeOTPRepository) ClearAttempts(_ context.Context, mobile string) error {
	delete(repo.attempts, mobile)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, _ string, _ time.Duration) (string, error) {
	return "access-" + userID, nil
}

type recordingSender struct {
	sentCodes map[string]string
}

func (sender *recordingSender) Send(_ context.Context, mobile, code string) error {
	sender.sentCodes[mobile] = code
	return nil
}

type fixture struct {
	service  *auth.Service
	users    *fakeUserRepository
	sessions *fakeSessionRepository
	otps     *fakeOTPRepository
	sender   *recordingSender
}

func newFixture() *fixture {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	otps := newFakeOTPRepository()
	sender := &recordingSender{sentCodes: map[string]string{}}

	return &fixture{
		service:  auth.NewService(users, sessions, otps, fakeTokenProvider{}, sender),
		users:    users,
		sessions: sessions,
		otps:     otps,
		sender:   sender,
	}
}

// # OTP Flow

/*
TestService_SendOTP verifies that a code is generated, stored, and delivered.
*/
func TestService_SendOTP(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	err := fix.service.SendOTP(ctx, "9876543210")
	require.NoError(t, err)

	// 1. The stored code and the delivered code must match
	storedCode := fix.otps.codes["9876543210"]
	assert.Len(t, storedCode, auth.OTPCodeDigits)
	assert.Equal(t, storedCode, fix.sender.sentCodes["9876543210"])
}

/*
TestService_SendOTP_RateLimited verifies the per-number send budget.
*/
func TestService_SendOTP_RateLimited(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	// 1. The first sends within the budget succeed
	for i := 0; i < auth.OTPSendLimit; i++ {
		require.NoError(t, fix.service.SendOTP(ctx, "9876543210"))
	}

	// 2. The next send is rejected
	err := fix.service.SendOTP(ctx, "9876543210")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "RATE_LIMITED", appErr.Code)
}

/*
TestService_VerifyOTP_NewUser verifies account provisioning on first login.
*/
func TestService_VerifyOTP_NewUser(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	require.NoError(t, fix.service.SendOTP(ctx, "9876543210"))
	code := fix.sender.sentCodes["9876543210"]

	session, err := fix.service.VerifyOTP(ctx, auth.VerifyInput{Mobile: "9876543210", Code: code})
	require.NoError(t, err)

	// 1. A brand-new account was provisioned
	assert.True(t, session.IsNewUser)
	assert.Equal(t, "9876543210", session.User.Mobile)
	assert.Equal(t, sec.RoleFarmer, session.User.Role)
	assert.Equal(t, auth.DefaultLanguage, session.User.Language)

	// 2. A working token pair was issued
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)

	// 3. The code is single-use
	_, err = fix.service.VerifyOTP(ctx, auth.VerifyInput{Mobile: "9876543210", Code: code})
	require.Error(t, err)
	assert.Equal(t, "OTP_EXPIRED", apperr.As(err).Code)
}

/*
TestService_VerifyOTP_ExistingUser verifies a returning farmer is recognized.
*/
func TestService_VerifyOTP_ExistingUser(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	require.NoError(t, fix.users.Create(ctx, &auth.User{
		ID:       "user-1",
		Mobile:   "9876543210",
		FullName: "Ravi Kumar",
		Role:     sec.RoleFarmer,
		IsActive: true,
	}))

	require.NoError(t, fix.service.SendOTP(ctx, "9876543210"))
	code := fix.sender.sentCodes["9876543210"]

	session, err := fix.service.VerifyOTP(ctx, auth.VerifyInput{Mobile: "9876543210", Code: code})
	require.NoError(t, err)

	assert.False(t, session.IsNewUser)
	assert.Equal(t, "user-1", session.User.ID)
	assert.Equal(t, "Ravi Kumar", session.User.FullName)
}

/*
TestService_VerifyOTP_WrongCode verifies the invalid-code rejection path.
*/
func TestService_VerifyOTP_WrongCode(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	require.NoError(t, fix.service.SendOTP(ctx, "9876543210"))

	_, err := fix.service.VerifyOTP(ctx, auth.VerifyInput{Mobile: "9876543210", Code: "0000"})
	require.Error(t, err)
	assert.Equal(t, "OTP_INVALID", apperr.As(err).Code)

	// The correct code still works after a single wrong guess
	code := fix.sender.sentCodes["9876543210"]
	_, err = fix.service.VerifyOTP(ctx, auth.VerifyInput{Mobile: "9876543210", Code: code})
	assert.NoError(t, err)
}

/*
TestService_VerifyOTP_AttemptBudget verifies that a flood of wrong guesses
invalidates the live code.
*/
func TestService_VerifyOTP_AttemptBudget(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	require.NoError(t, fix.service.SendOTP(ctx, "9876543210"))
	code := fix.sender.sentCodes["9876543210"]

	// 1. Exhaust the attempt budget with wrong guesses
	for i := 0; i < auth.OTPAttemptLimit; i++ {
		_, err := fix.service.VerifyOTP(ctx, auth.VerifyInput{Mobile: "9876543210", Code: "0000"})
		require.Error(t, err)
	}

	// 2. The next attempt trips the budget and burns the code
	_, err := fix.service.VerifyOTP(ctx, auth.VerifyInput{Mobile: "9876543210", Code: "0000"})
	require.Error(t, err)
	assert.Equal(t, "RATE_LIMITED", apperr.As(err).Code)

	// 3. Even the correct code is now dead
	_, err = fix.service.VerifyOTP(ctx, auth.VerifyInput{Mobile: "9876543210", Code: code})
	require.Error(t, err)
	assert.Equal(t, "OTP_EXPIRED", apperr.As(err).Code)
}

/*
TestService_VerifyOTP_Expired verifies the no-live-code rejection path.
*/
func TestService_VerifyOTP_Expired(t *testing.T) {
	fix := newFixture()

	_, err := fix.service.VerifyOTP(context.Background(), auth.VerifyInput{Mobile: "9876543210", Code: "1234"})
	require.Error(t, err)
	assert.Equal(t, "OTP_EXPIRED", apperr.As(err).Code)
}

// # Session Lifecycle

func login(t *testing.T, fix *fixture, mobile string) *auth.LoginSession {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, fix.service.SendOTP(ctx, mobile))
	session, err := fix.service.VerifyOTP(ctx, auth.VerifyInput{
		Mobile: mobile,
		Code:   fix.sender.sentCodes[mobile],
	})
	require.NoError(t, err)
	return session
}

/*
TestService_RefreshSession verifies refresh token rotation.
*/
func TestService_RefreshSession(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	session := login(t, fix, "9876543210")

	// 1. Rotation issues a new pair
	rotated, err := fix.service.RefreshSession(ctx, session.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// 2. The old token is dead after rotation
	_, err = fix.service.RefreshSession(ctx, session.RefreshToken, "", "")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	// 3. The new token still works
	_, err = fix.service.RefreshSession(ctx, rotated.RefreshToken, "", "")
	assert.NoError(t, err)
}

/*
TestService_Logout verifies that logout revokes the session and stays
idempotent for unknown tokens.
*/
func TestService_Logout(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	session := login(t, fix, "9876543210")

	// 1. First logout revokes the session
	require.NoError(t, fix.service.Logout(ctx, session.RefreshToken))
	_, err := fix.service.RefreshSession(ctx, session.RefreshToken, "", "")
	require.Error(t, err)

	// 2. Repeating the logout is still a success
	assert.NoError(t, fix.service.Logout(ctx, session.RefreshToken))

	// 3. A token that never existed is also a success
	assert.NoError(t, fix.service.Logout(ctx, "never-issued"))
}

// # Profile Management

/*
TestService_UpdateProfile verifies field application and state resolution
from the PIN code's postal zone.
*/
func TestService_UpdateProfile(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	session := login(t, fix, "9876543210")

	updated, err := fix.service.UpdateProfile(ctx, session.User.ID, auth.ProfileInput{
		FullName: "Ravi Kumar",
		PinCode:  "203205",
		Language: "hi",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ravi Kumar", updated.FullName)
	assert.Equal(t, "203205", updated.PinCode)
	assert.Equal(t, "Uttar Pradesh", updated.State)
	assert.Equal(t, "hi", updated.Language)

	// An explicit state always wins over postal resolution
	updated, err = fix.service.UpdateProfile(ctx, session.User.ID, auth.ProfileInput{
		FullName: "Ravi Kumar",
		PinCode:  "203205",
		State:    "Haryana",
	})
	require.NoError(t, err)
	assert.Equal(t, "Haryana", updated.State)
}

/*
TestService_SyncCropPreferences verifies wholesale crop selection replacement.
*/
func TestService_SyncCropPreferences(t *testing.T) {
	fix := newFixture()
	ctx := context.Background()

	session := login(t, fix, "9876543210")

	require.NoError(t, fix.service.SyncCropPreferences(ctx, session.User.ID, []string{"wheat-01", "rice-02"}))

	cropIDs, err := fix.service.CropPreferences(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"wheat-01", "rice-02"}, cropIDs)

	// The submitted list is the full desired state, not a delta
	require.NoError(t, fix.service.SyncCropPreferences(ctx, session.User.ID, []string{"wheat-01"}))

	cropIDs, err = fix.service.CropPreferences(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"wheat-01"}, cropIDs)

	// Profile is hydrated with the selection
	user, err := fix.service.Profile(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"wheat-01"}, user.CropPreferences)
}

/*
TestMaskMobile verifies log masking keeps only the last four digits.
*/
func TestMaskMobile(t *testing.T) {
	assert.Equal(t, "******3210", auth.MaskMobile("9876543210"))
	assert.Equal(t, "1234", auth.MaskMobile("1234"))
}
