// Copyright (c) 2026 Agrio India. All rights reserved.

/*
Package authflow drives the farmer sign-in journey as an explicit state
machine.

The flow walks mobile entry, OTP entry and, for first-time users, the
onboarding steps (profile, crop selection). Each transition validates its
input locally before touching the network, and every server failure is
classified into a stable [ErrorKind] so the caller can render the right
message without string matching.
*/
package authflow

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/agrioindia/platform/client"
	"github.com/agrioindia/platform/client/session"
)

// # Constants

const (
	// ResendCooldown is the minimum wait between OTP sends for one mobile.
	ResendCooldown = 60 * time.Second

	// OTPLength is the number of digits in a one-time code.
	OTPLength = 4
)

// mobilePattern accepts Indian mobile numbers: ten digits starting 6-9.
var mobilePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// otpPattern accepts exactly OTPLength digits.
var otpPattern = regexp.MustCompile(`^[0-9]{4}$`)

// pincodePattern accepts Indian postal codes: six digits, no leading zero.
var pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// # Steps

// Step identifies the screen the flow is on.
type Step int

const (
	// StepMobile collects the mobile number.
	StepMobile Step = iota

	// StepOTP collects the one-time code.
	StepOTP

	// StepProfile collects the new user's profile.
	StepProfile

	// StepCrops collects the new user's crop selection.
	StepCrops

	// StepDone means the journey is complete.
	StepDone
)

// String returns the step's display name.
func (s Step) String() string {
	switch s {
	case StepMobile:
		return "mobile"
	case StepOTP:
		return "otp"
	case StepProfile:
		return "profile"
	case StepCrops:
		return "crops"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// # Error Classification

// ErrorKind buckets flow failures for presentation.
type ErrorKind int

const (
	// ErrorUnknown covers failures with no better bucket.
	ErrorUnknown ErrorKind = iota

	// ErrorValidation means the input was rejected before or by the server.
	ErrorValidation

	// ErrorOTPExpired means the code lapsed; the user should request a new one.
	ErrorOTPExpired

	// ErrorOTPInvalid means the code was wrong; the user can retry.
	ErrorOTPInvalid

	// ErrorRateLimited means sends or attempts were exhausted.
	ErrorRateLimited

	// ErrorNetwork means no response arrived at all.
	ErrorNetwork
)

// FlowError is a classified flow failure.
type FlowError struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *FlowError) Error() string {
	return e.Message
}

// Classify buckets an API failure into an [ErrorKind].
//
// The machine-readable code is authoritative. The message fallback exists for
// upstream proxies that strip the code but pass the text through.
func Classify(apiErr *client.APIError) ErrorKind {
	if apiErr == nil {
		return ErrorUnknown
	}
	if apiErr.IsNetwork() {
		return ErrorNetwork
	}

	switch apiErr.Code {
	case "OTP_EXPIRED":
		return ErrorOTPExpired
	case "OTP_INVALID":
		return ErrorOTPInvalid
	case "RATE_LIMITED":
		return ErrorRateLimited
	case "VALIDATION_ERROR":
		return ErrorValidation
	}

	message := strings.ToLower(apiErr.Message)
	switch {
	case strings.Contains(message, "expired"):
		return ErrorOTPExpired
	case strings.Contains(message, "incorrect"):
		return ErrorOTPInvalid
	case strings.Contains(message, "too many"):
		return ErrorRateLimited
	}

	return ErrorUnknown
}

func flowErr(apiErr *client.APIError) *FlowError {
	return &FlowError{Kind: Classify(apiErr), Message: apiErr.Message}
}

func validationErr(message string) *FlowError {
	return &FlowError{Kind: ErrorValidation, Message: message}
}

// # Flow

// CompletionResult reports how much of the onboarding tail succeeded.
//
// The session itself is established at OTP verification. Completion writes
// the staged profile first and then syncs the crop selection; only the sync
// is best effort, so PrefsSynced can be false on a successful completion
// while a failed profile save aborts it.
type CompletionResult struct {
	ProfileSaved bool
	PrefsSynced  bool
}

// Flow is the sign-in state machine. Safe for concurrent use.
type Flow struct {
	mu       sync.Mutex
	api      *client.Client
	sessions *session.Store
	now      func() time.Time

	step         Step
	mobile       string
	lastSentAt   time.Time
	isNewUser    bool
	profileDraft *client.ProfileInput
	crops        []client.Crop
}

// Option customizes a [Flow].
type Option func(*Flow)

// WithClock swaps the time source. Tests use this to step through the resend
// cooldown without sleeping.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) { f.now = now }
}

// New creates a [Flow] at [StepMobile].
func New(api *client.Client, sessions *session.Store, options ...Option) *Flow {
	flow := &Flow{
		api:      api,
		sessions: sessions,
		now:      time.Now,
		step:     StepMobile,
	}

	for _, option := range options {
		option(flow)
	}

	return flow
}

/*
Start loads the crop directory shown on the crop selection screen.

Call it once, right after New: the list loads while the user is still
typing their number. A failed fetch leaves the list empty and the flow
fully usable; [Flow.Crops] simply returns nothing.

Returns:
  - error: *FlowError describing the classified fetch failure.
*/
func (f *Flow) Start(ctx context.Context) error {
	result := f.api.Crops(ctx)
	if !result.OK {
		return flowErr(result.Err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.crops = result.Data

	return nil
}

// Crops returns the directory fetched by [Flow.Start], for the crop
// selection screen. Empty until Start has succeeded.
func (f *Flow) Crops() []client.Crop {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]client.Crop(nil), f.crops...)
}

// Step returns the current step.
func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.step
}

// Mobile returns the number the flow is verifying, or "" before entry.
func (f *Flow) Mobile() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.mobile
}

/*
SubmitMobile validates the number and requests an OTP.

Parameters:
  - ctx: Bounds the send call.
  - mobile: Ten digits starting 6-9. Surrounding whitespace is trimmed.

Returns:
  - error: *FlowError on validation or server failure. On success the flow
    advances to [StepOTP].
*/
func (f *Flow) SubmitMobile(ctx context.Context, mobile string) error {
	mobile = strings.TrimSpace(mobile)
	if !mobilePattern.MatchString(mobile) {
		return validationErr("Enter a valid 10-digit mobile number.")
	}

	f.mu.Lock()
	if f.step != StepMobile && f.step != StepOTP {
		f.mu.Unlock()
		return validationErr(fmt.Sprintf("Cannot submit a mobile number at the %s step.", f.step))
	}
	f.mu.Unlock()

	if result := f.api.SendOTP(ctx, mobile); !result.OK {
		return flowErr(result.Err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.mobile = mobile
	f.lastSentAt = f.now()
	f.step = StepOTP

	return nil
}

// ResendRemaining returns how long until another OTP may be requested.
// Zero means a resend is allowed now.
func (f *Flow) ResendRemaining() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.resendRemainingLocked()
}

func (f *Flow) resendRemainingLocked() time.Duration {
	if f.lastSentAt.IsZero() {
		return 0
	}
	remaining := ResendCooldown - f.now().Sub(f.lastSentAt)
	if remaining < 0 {
		return 0
	}

	return remaining
}

/*
ResendOTP requests a fresh code for the number already on file.

Returns:
  - error: *FlowError with [ErrorRateLimited] while the local cooldown is
    running, or the classified server failure.
*/
func (f *Flow) ResendOTP(ctx context.Context) error {
	f.mu.Lock()
	if f.step != StepOTP {
		f.mu.Unlock()
		return validationErr("No verification in progress.")
	}
	if remaining := f.resendRemainingLocked(); remaining > 0 {
		f.mu.Unlock()
		return &FlowError{
			Kind:    ErrorRateLimited,
			Message: fmt.Sprintf("Please wait %d seconds before requesting another OTP.", int(remaining.Seconds())),
		}
	}
	mobile := f.mobile
	f.mu.Unlock()

	if result := f.api.SendOTP(ctx, mobile); !result.OK {
		return flowErr(result.Err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastSentAt = f.now()

	return nil
}

/*
SubmitOTP verifies the code and establishes the session.

On success the session store holds the logged-in user. First-time users move
to [StepProfile]; returning users are done.

Parameters:
  - ctx: Bounds the verify call.
  - code: The one-time code as entered.

Returns:
  - error: *FlowError on validation or server failure.
*/
func (f *Flow) SubmitOTP(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if !otpPattern.MatchString(code) {
		return validationErr(fmt.Sprintf("Enter the %d-digit OTP.", OTPLength))
	}

	f.mu.Lock()
	if f.step != StepOTP {
		f.mu.Unlock()
		return validationErr("No verification in progress.")
	}
	mobile := f.mobile
	f.mu.Unlock()

	result := f.api.VerifyOTP(ctx, mobile, code)
	if !result.OK {
		return flowErr(result.Err)
	}

	if err := f.sessions.Login(result.Data); err != nil {
		return &FlowError{Kind: ErrorUnknown, Message: err.Error()}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.isNewUser = result.Data.IsNewUser
	if f.isNewUser {
		f.step = StepProfile
	} else {
		f.step = StepDone
	}

	return nil
}

/*
SubmitProfile validates and stages the onboarding profile.

Nothing is sent yet: the draft is held locally and written during crop
completion, so the whole onboarding commits as one action at the end.
On success the flow advances to [StepCrops].

Parameters:
  - input: The profile fields. FullName and PinCode are required here even
    though the server tolerates their absence on later edits.

Returns:
  - error: *FlowError on validation failure or an out-of-order call.
*/
func (f *Flow) SubmitProfile(input client.ProfileInput) error {
	if len(strings.TrimSpace(input.FullName)) < 2 {
		return validationErr("Please enter your full name.")
	}
	if !pincodePattern.MatchString(strings.TrimSpace(input.PinCode)) {
		return validationErr("Enter a valid 6-digit PIN code.")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepProfile {
		return validationErr("Profile entry is not the current step.")
	}

	f.profileDraft = &input
	f.step = StepCrops

	return nil
}

// SkipProfile moves past the profile step. No draft is staged, so the
// completion call will not write a profile.
func (f *Flow) SkipProfile() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step == StepProfile {
		f.profileDraft = nil
		f.step = StepCrops
	}
}

/*
SubmitCrops completes the flow: the staged profile is written first, then
the crop selection is synced.

The two calls are strictly sequential. A failed profile save keeps the
flow on the crops step so the user can retry the whole completion; a
failed sync is best effort — the user is already signed in, so it only
clears the PrefsSynced flag. At least one crop must be picked; use
[Flow.SkipCrops] to finish without a selection.

Returns:
  - CompletionResult: What actually stuck.
  - error: *FlowError when the profile save failed or the call was out of
    order. The flow has not completed in either case.
*/
func (f *Flow) SubmitCrops(ctx context.Context, cropIDs []string) (CompletionResult, error) {
	if len(cropIDs) == 0 {
		return CompletionResult{}, validationErr("Please select at least one crop.")
	}

	return f.complete(ctx, cropIDs)
}

// SkipCrops completes the flow without a crop selection. A staged profile
// is still written, with the same retry semantics as [Flow.SubmitCrops].
func (f *Flow) SkipCrops(ctx context.Context) (CompletionResult, error) {
	return f.complete(ctx, nil)
}

func (f *Flow) complete(ctx context.Context, cropIDs []string) (CompletionResult, error) {
	f.mu.Lock()
	if f.step != StepCrops {
		f.mu.Unlock()
		return CompletionResult{}, validationErr("Crop selection is not the current step.")
	}
	draft := f.profileDraft
	f.mu.Unlock()

	var outcome CompletionResult
	var user *client.User

	// Profile first. Its failure aborts completion so the user can fix
	// the problem and finish from the same screen.
	if draft != nil {
		result := f.api.UpdateProfile(ctx, *draft)
		if !result.OK {
			return CompletionResult{}, flowErr(result.Err)
		}
		saved := result.Data
		user = &saved
		outcome.ProfileSaved = true
	}

	if len(cropIDs) > 0 {
		outcome.PrefsSynced = f.api.SyncCropPreferences(ctx, cropIDs).OK
	}

	// The session user picks up whatever stuck: the saved profile, the
	// synced selection, or both.
	if user == nil && outcome.PrefsSynced {
		if snapshot := f.sessions.Snapshot(); snapshot.User != nil {
			copied := *snapshot.User
			user = &copied
		}
	}
	if user != nil {
		if outcome.PrefsSynced {
			user.CropPreferences = append([]string(nil), cropIDs...)
		}
		_ = f.sessions.SetUser(user)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.profileDraft = nil
	f.step = StepDone

	return outcome, nil
}

// Back steps one screen backwards where that makes sense: OTP entry returns
// to the mobile screen, crop selection to the profile screen. Other steps
// stay put.
func (f *Flow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.step {
	case StepOTP:
		f.step = StepMobile
	case StepCrops:
		f.step = StepProfile
	}
}
