// Copyright (c) 2026 Agrio India. All rights reserved.

package authflow_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrioindia/platform/client"
	"github.com/agrioindia/platform/client/authflow"
	"github.com/agrioindia/platform/client/session"
)

// # Fake Platform

// fakePlatform is a minimal stand-in for the auth endpoints, enough to walk
// the whole sign-in journey. Every request is recorded in order, so tests
// can pin down exactly which calls a step issued.
type fakePlatform struct {
	mu sync.Mutex

	otpCode     string
	sendCount   int
	knownUsers  map[string]*client.User // keyed by mobile
	profile     client.ProfileInput
	crops       []string
	failProfile bool
	failCrops   bool

	calls []string // "METHOD /path", in arrival order
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{otpCode: "1234", knownUsers: map[string]*client.User{}}
}

// recorded returns the request log so far.
func (p *fakePlatform) recorded() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]string(nil), p.calls...)
}

func (p *fakePlatform) handler(t *testing.T) http.Handler {
	t.Helper()

	mux := http.NewServeMux()

	respond := func(writer http.ResponseWriter, status int, payload any) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		require.NoError(t, json.NewEncoder(writer).Encode(payload))
	}
	fail := func(writer http.ResponseWriter, status int, code, message string) {
		respond(writer, status, map[string]any{
			"success": false,
			"error":   map[string]any{"message": message, "code": code},
		})
	}

	mux.HandleFunc("POST /api/v1/auth/send-otp", func(writer http.ResponseWriter, request *http.Request) {
		p.mu.Lock()
		p.sendCount++
		p.mu.Unlock()

		respond(writer, http.StatusOK, map[string]any{"success": true, "data": map[string]any{}})
	})

	mux.HandleFunc("POST /api/v1/auth/verify-otp", func(writer http.ResponseWriter, request *http.Request) {
		var payload struct {
			Mobile string `json:"mobile"`
			OTP    string `json:"otp"`
		}
		require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))

		p.mu.Lock()
		defer p.mu.Unlock()

		if payload.OTP != p.otpCode {
			fail(writer, http.StatusUnauthorized, "OTP_INVALID", "The OTP you entered is incorrect.")
			return
		}

		user, known := p.knownUsers[payload.Mobile]
		if !known {
			user = &client.User{ID: "u-" + payload.Mobile, Mobile: payload.Mobile, Role: "farmer", Language: "en", IsActive: true}
			p.knownUsers[payload.Mobile] = user
		}

		respond(writer, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"access_token":  "access-" + payload.Mobile,
				"refresh_token": "refresh-" + payload.Mobile,
				"is_new_user":   !known,
				"user":          user,
			},
		})
	})

	mux.HandleFunc("GET /api/v1/crops", func(writer http.ResponseWriter, request *http.Request) {
		respond(writer, http.StatusOK, map[string]any{"success": true, "data": []client.Crop{
			{ID: "wheat-01", Slug: "wheat", Name: "Wheat", NameHi: "गेहूं", Season: "rabi"},
			{ID: "paddy-02", Slug: "paddy", Name: "Paddy", NameHi: "धान", Season: "kharif"},
		}})
	})

	mux.HandleFunc("PUT /api/v1/auth/profile", func(writer http.ResponseWriter, request *http.Request) {
		p.mu.Lock()
		failing := p.failProfile
		p.mu.Unlock()

		if failing {
			fail(writer, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service temporarily unavailable")
			return
		}

		var input client.ProfileInput
		require.NoError(t, json.NewDecoder(request.Body).Decode(&input))

		p.mu.Lock()
		p.profile = input
		user := &client.User{
			ID:       "u-9876543210",
			Mobile:   "9876543210",
			FullName: input.FullName,
			PinCode:  input.PinCode,
			State:    "Uttar Pradesh",
			Language: "en",
			Role:     "farmer",
			IsActive: true,
		}
		p.mu.Unlock()

		respond(writer, http.StatusOK, map[string]any{"success": true, "data": user})
	})

	mux.HandleFunc("PUT /api/v1/auth/crop-preferences", func(writer http.ResponseWriter, request *http.Request) {
		p.mu.Lock()
		failing := p.failCrops
		p.mu.Unlock()

		if failing {
			fail(writer, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service temporarily unavailable")
			return
		}

		var payload struct {
			Crops []string `json:"crops"`
		}
		require.NoError(t, json.NewDecoder(request.Body).Decode(&payload))

		p.mu.Lock()
		p.crops = payload.Crops
		p.mu.Unlock()

		respond(writer, http.StatusOK, map[string]any{"success": true, "data": payload})
	})

	mux.HandleFunc("POST /api/v1/auth/logout", func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNoContent)
	})

	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		p.mu.Lock()
		p.calls = append(p.calls, request.Method+" "+request.URL.Path)
		p.mu.Unlock()

		mux.ServeHTTP(writer, request)
	})
}

// # Fixture

type fixture struct {
	platform *fakePlatform
	server   *httptest.Server
	sessions *session.Store
	now      time.Time
	nowMu    sync.Mutex
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fix := &fixture{
		platform: newFakePlatform(),
		now:      time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC),
	}
	fix.server = httptest.NewServer(fix.platform.handler(t))
	t.Cleanup(fix.server.Close)

	fix.sessions = session.New(nil, &session.MemoryStorage{})
	api := client.New(fix.server.URL, client.WithTokenStore(fix.sessions))
	fix.sessions.Bind(api)

	return fix
}

func (fix *fixture) flow() *authflow.Flow {
	api := client.New(fix.server.URL, client.WithTokenStore(fix.sessions))

	return authflow.New(api, fix.sessions, authflow.WithClock(fix.clock))
}

func (fix *fixture) clock() time.Time {
	fix.nowMu.Lock()
	defer fix.nowMu.Unlock()

	return fix.now
}

func (fix *fixture) advance(d time.Duration) {
	fix.nowMu.Lock()
	defer fix.nowMu.Unlock()

	fix.now = fix.now.Add(d)
}

// # Tests

/*
TestFlow_MobileValidation verifies that malformed numbers are rejected
locally, before any request leaves the device.
*/
func TestFlow_MobileValidation(t *testing.T) {
	fix := newFixture(t)
	flow := fix.flow()

	for _, mobile := range []string{"", "12345", "1234567890", "98765432101", "98765-4321", "abcdefghij"} {
		err := flow.SubmitMobile(context.Background(), mobile)

		var flowError *authflow.FlowError
		require.ErrorAs(t, err, &flowError, "mobile %q", mobile)
		assert.Equal(t, authflow.ErrorValidation, flowError.Kind)
	}

	// Nothing reached the server and the flow did not move.
	assert.Equal(t, 0, fix.platform.sendCount)
	assert.Equal(t, authflow.StepMobile, flow.Step())
}

/*
TestFlow_OTPValidation verifies that a malformed code is rejected locally.
*/
func TestFlow_OTPValidation(t *testing.T) {
	fix := newFixture(t)
	flow := fix.flow()

	require.NoError(t, flow.SubmitMobile(context.Background(), "9876543210"))

	for _, code := range []string{"", "12", "12345", "12a4"} {
		err := flow.SubmitOTP(context.Background(), code)

		var flowError *authflow.FlowError
		require.ErrorAs(t, err, &flowError, "code %q", code)
		assert.Equal(t, authflow.ErrorValidation, flowError.Kind)
	}

	assert.Equal(t, authflow.StepOTP, flow.Step())
	assert.False(t, fix.sessions.IsAuthenticated())
}

/*
TestFlow_Registration walks the complete first-time journey: mobile, OTP,
profile, crop selection.
*/
func TestFlow_Registration(t *testing.T) {
	fix := newFixture(t)
	flow := fix.flow()
	ctx := context.Background()

	// 1. Mobile entry
	require.NoError(t, flow.SubmitMobile(ctx, "9876543210"))
	assert.Equal(t, authflow.StepOTP, flow.Step())
	assert.Equal(t, "9876543210", flow.Mobile())
	assert.Equal(t, 1, fix.platform.sendCount)

	// 2. OTP entry establishes the session; a first-timer moves to profile
	require.NoError(t, flow.SubmitOTP(ctx, "1234"))
	assert.Equal(t, authflow.StepProfile, flow.Step())
	assert.True(t, fix.sessions.IsAuthenticated())
	assert.True(t, fix.sessions.Snapshot().IsNewUser)

	// 3. Profile entry only stages a draft; nothing reaches the server yet
	require.NoError(t, flow.SubmitProfile(client.ProfileInput{
		FullName: "Ravi Kumar",
		PinCode:  "203205",
	}))
	assert.Equal(t, authflow.StepCrops, flow.Step())
	assert.Empty(t, fix.platform.profile.FullName)

	// 4. Crop selection commits the whole onboarding
	outcome, err := flow.SubmitCrops(ctx, []string{"wheat-01", "paddy-02"})
	require.NoError(t, err)
	assert.Equal(t, authflow.StepDone, flow.Step())
	assert.True(t, outcome.ProfileSaved)
	assert.True(t, outcome.PrefsSynced)
	assert.Equal(t, "Ravi Kumar", fix.platform.profile.FullName)
	assert.Equal(t, []string{"wheat-01", "paddy-02"}, fix.platform.crops)

	// 5. The session user carries the committed profile and selection
	user := fix.sessions.Snapshot().User
	require.NotNil(t, user)
	assert.Equal(t, "Ravi Kumar", user.FullName)
	assert.Equal(t, "Uttar Pradesh", user.State)
	assert.Equal(t, []string{"wheat-01", "paddy-02"}, user.CropPreferences)
}

/*
TestFlow_ReturningUser verifies that a known user skips onboarding entirely.
*/
func TestFlow_ReturningUser(t *testing.T) {
	fix := newFixture(t)
	fix.platform.knownUsers["9876543210"] = &client.User{
		ID: "u1", Mobile: "9876543210", FullName: "Ravi Kumar", Language: "hi", Role: "farmer", IsActive: true,
	}

	flow := fix.flow()
	ctx := context.Background()

	require.NoError(t, flow.SubmitMobile(ctx, "9876543210"))
	require.NoError(t, flow.SubmitOTP(ctx, "1234"))

	assert.Equal(t, authflow.StepDone, flow.Step())
	assert.False(t, fix.sessions.Snapshot().IsNewUser)
	// The stored language follows the account.
	assert.Equal(t, "hi", fix.sessions.Language())
}

/*
TestFlow_WrongOTP verifies classification of a wrong code and that the flow
stays on the OTP step for a retry.
*/
func TestFlow_WrongOTP(t *testing.T) {
	fix := newFixture(t)
	flow := fix.flow()
	ctx := context.Background()

	require.NoError(t, flow.SubmitMobile(ctx, "9876543210"))

	err := flow.SubmitOTP(ctx, "9999")

	var flowError *authflow.FlowError
	require.ErrorAs(t, err, &flowError)
	assert.Equal(t, authflow.ErrorOTPInvalid, flowError.Kind)
	assert.Equal(t, authflow.StepOTP, flow.Step())
	assert.False(t, fix.sessions.IsAuthenticated())

	// The correct code still goes through.
	require.NoError(t, flow.SubmitOTP(ctx, "1234"))
	assert.True(t, fix.sessions.IsAuthenticated())
}

/*
TestFlow_ResendCooldown verifies the 60-second resend gate and that it is
driven by the injected clock.
*/
func TestFlow_ResendCooldown(t *testing.T) {
	fix := newFixture(t)
	flow := fix.flow()
	ctx := context.Background()

	require.NoError(t, flow.SubmitMobile(ctx, "9876543210"))
	require.Equal(t, 1, fix.platform.sendCount)

	// 1. An immediate resend is blocked locally
	err := flow.ResendOTP(ctx)
	var flowError *authflow.FlowError
	require.ErrorAs(t, err, &flowError)
	assert.Equal(t, authflow.ErrorRateLimited, flowError.Kind)
	assert.Equal(t, 1, fix.platform.sendCount)

	// 2. Halfway through the window, still blocked
	fix.advance(30 * time.Second)
	assert.Equal(t, 30*time.Second, flow.ResendRemaining())
	require.Error(t, flow.ResendOTP(ctx))

	// 3. After the window, the resend goes out
	fix.advance(31 * time.Second)
	assert.Equal(t, time.Duration(0), flow.ResendRemaining())
	require.NoError(t, flow.ResendOTP(ctx))
	assert.Equal(t, 2, fix.platform.sendCount)
}

/*
TestFlow_PartialCropSyncStillCompletes verifies that a failed crop sync
degrades the onboarding without undoing the login.
*/
func TestFlow_PartialCropSyncStillCompletes(t *testing.T) {
	fix := newFixture(t)
	fix.platform.failCrops = true

	flow := fix.flow()
	ctx := context.Background()

	require.NoError(t, flow.SubmitMobile(ctx, "9876543210"))
	require.NoError(t, flow.SubmitOTP(ctx, "1234"))
	require.NoError(t, flow.SubmitProfile(client.ProfileInput{FullName: "Ravi Kumar", PinCode: "203205"}))

	outcome, err := flow.SubmitCrops(ctx, []string{"wheat-01"})

	require.NoError(t, err)
	assert.Equal(t, authflow.StepDone, flow.Step())
	assert.True(t, outcome.ProfileSaved)
	assert.False(t, outcome.PrefsSynced)
	// The session survived the partial failure, but an unsynced selection
	// never lands on the stored user.
	assert.True(t, fix.sessions.IsAuthenticated())
	assert.Empty(t, fix.sessions.Snapshot().User.CropPreferences)
}

/*
TestFlow_BackNavigation verifies the permitted backwards transitions.
*/
func TestFlow_BackNavigation(t *testing.T) {
	fix := newFixture(t)
	flow := fix.flow()
	ctx := context.Background()

	// Mobile cannot go further back.
	flow.Back()
	assert.Equal(t, authflow.StepMobile, flow.Step())

	require.NoError(t, flow.SubmitMobile(ctx, "9876543210"))
	flow.Back()
	assert.Equal(t, authflow.StepMobile, flow.Step())

	// Re-entering a number from the mobile step works after backing out.
	require.NoError(t, flow.SubmitMobile(ctx, "9123456789"))
	assert.Equal(t, "9123456789", flow.Mobile())
}

/*
TestClassify covers the error code buckets and the message fallback used
when a proxy strips the code.
*/
func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  *client.APIError
		want authflow.ErrorKind
	}{
		{"expired code", &client.APIError{Status: 401, Code: "OTP_EXPIRED", Message: "The OTP has expired. Please request a new one."}, authflow.ErrorOTPExpired},
		{"wrong code", &client.APIError{Status: 401, Code: "OTP_INVALID", Message: "The OTP you entered is incorrect."}, authflow.ErrorOTPInvalid},
		{"rate limited", &client.APIError{Status: 429, Code: "RATE_LIMITED", Message: "Too many requests. Try again in 540 seconds."}, authflow.ErrorRateLimited},
		{"validation", &client.APIError{Status: 400, Code: "VALIDATION_ERROR", Message: "Invalid request"}, authflow.ErrorValidation},
		{"expired by message only", &client.APIError{Status: 401, Message: "The OTP has expired."}, authflow.ErrorOTPExpired},
		{"incorrect by message only", &client.APIError{Status: 401, Message: "The OTP you entered is incorrect."}, authflow.ErrorOTPInvalid},
		{"throttled by message only", &client.APIError{Status: 429, Message: "Too many requests"}, authflow.ErrorRateLimited},
		{"network", &client.APIError{Status: 0, Code: client.CodeNetwork, Message: "connection refused"}, authflow.ErrorNetwork},
		{"unclassified", &client.APIError{Status: 500, Message: "Internal server error"}, authflow.ErrorUnknown},
		{"nil", nil, authflow.ErrorUnknown},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, authflow.Classify(testCase.err))
		})
	}
}

/*
TestFlow_CropStepValidation verifies that an empty selection is rejected and
that skipping is the explicit way out.
*/
func TestFlow_CropStepValidation(t *testing.T) {
	fix := newFixture(t)
	flow := fix.flow()
	ctx := context.Background()

	require.NoError(t, flow.SubmitMobile(ctx, "9876543210"))
	require.NoError(t, flow.SubmitOTP(ctx, "1234"))
	require.NoError(t, flow.SubmitProfile(client.ProfileInput{FullName: "Ravi Kumar", PinCode: "203205"}))

	// 1. An empty selection does not complete the flow
	_, err := flow.SubmitCrops(ctx, nil)
	var flowError *authflow.FlowError
	require.ErrorAs(t, err, &flowError)
	assert.Equal(t, authflow.ErrorValidation, flowError.Kind)
	assert.Equal(t, authflow.StepCrops, flow.Step())

	// 2. Skipping completes: the staged profile is still written, but no
	// selection is synced
	outcome, err := flow.SkipCrops(ctx)
	require.NoError(t, err)
	assert.Equal(t, authflow.StepDone, flow.Step())
	assert.True(t, outcome.ProfileSaved)
	assert.False(t, outcome.PrefsSynced)
	assert.Equal(t, "Ravi Kumar", fix.platform.profile.FullName)
	assert.Empty(t, fix.platform.crops)
}

/*
TestFlow_ProfileSaveFailureKeepsCropsStep verifies that a failed profile
write aborts completion: the flow stays on the crops step, nothing is
synced, and a retry finishes the journey once the server recovers.
*/
func TestFlow_ProfileSaveFailureKeepsCropsStep(t *testing.T) {
	fix := newFixture(t)
	fix.platform.failProfile = true

	flow := fix.flow()
	ctx := context.Background()

	require.NoError(t, flow.SubmitMobile(ctx, "9876543210"))
	require.NoError(t, flow.SubmitOTP(ctx, "1234"))
	require.NoError(t, flow.SubmitProfile(client.ProfileInput{FullName: "Ravi Kumar", PinCode: "203205"}))

	// 1. The profile write fails, so completion is aborted
	_, err := flow.SubmitCrops(ctx, []string{"wheat-01"})
	var flowError *authflow.FlowError
	require.ErrorAs(t, err, &flowError)
	assert.Equal(t, authflow.StepCrops, flow.Step())
	assert.Empty(t, fix.platform.crops)
	// The login itself is untouched.
	assert.True(t, fix.sessions.IsAuthenticated())

	// 2. Retrying from the same screen finishes the journey
	fix.platform.mu.Lock()
	fix.platform.failProfile = false
	fix.platform.mu.Unlock()

	outcome, err := flow.SubmitCrops(ctx, []string{"wheat-01"})
	require.NoError(t, err)
	assert.Equal(t, authflow.StepDone, flow.Step())
	assert.True(t, outcome.ProfileSaved)
	assert.True(t, outcome.PrefsSynced)
	assert.Equal(t, "Ravi Kumar", fix.platform.profile.FullName)
}

/*
TestFlow_CallSequence pins down the order of backend calls across the whole
registration journey: the crop directory loads at flow start, each step
issues exactly one request after the previous response, the profile step
issues none at all, and completion writes the profile before the sync.
*/
func TestFlow_CallSequence(t *testing.T) {
	fix := newFixture(t)
	flow := fix.flow()
	ctx := context.Background()

	// 1. Flow start fetches the crop directory and nothing else
	require.NoError(t, flow.Start(ctx))
	assert.Equal(t, []string{"GET /api/v1/crops"}, fix.platform.recorded())
	require.Len(t, flow.Crops(), 2)
	assert.Equal(t, "wheat-01", flow.Crops()[0].ID)

	// 2. Mobile and OTP each issue a single call in turn
	require.NoError(t, flow.SubmitMobile(ctx, "9876543210"))
	require.NoError(t, flow.SubmitOTP(ctx, "1234"))
	assert.Equal(t, []string{
		"GET /api/v1/crops",
		"POST /api/v1/auth/send-otp",
		"POST /api/v1/auth/verify-otp",
	}, fix.platform.recorded())

	// 3. The profile step is silent
	require.NoError(t, flow.SubmitProfile(client.ProfileInput{FullName: "Ravi Kumar", PinCode: "203205"}))
	assert.Len(t, fix.platform.recorded(), 3)

	// 4. Completion runs profile save, then preference sync
	_, err := flow.SubmitCrops(ctx, []string{"wheat-01"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"GET /api/v1/crops",
		"POST /api/v1/auth/send-otp",
		"POST /api/v1/auth/verify-otp",
		"PUT /api/v1/auth/profile",
		"PUT /api/v1/auth/crop-preferences",
	}, fix.platform.recorded())
}
