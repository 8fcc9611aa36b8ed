// Copyright (c) 2026 Agrio India. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agrioindia/platform/internal/platform/apperr"
	"github.com/agrioindia/platform/internal/platform/constants"
)

// # OTP Repository

// RedisOTPRepository implements OTPRepository using Redis.
type RedisOTPRepository struct {
	client *redis.Client
}

// NewOTPRepository creates a new Redis-backed OTPRepository.
func NewOTPRepository(client *redis.Client) *RedisOTPRepository {
	return &RedisOTPRepository{client: client}
}

/*
SetCode stores the active OTP code for a mobile number.

Parameters:
  - context: context.Context
  - mobile: string
  - code: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisOTPRepository) SetCode(context context.Context, mobile, code string, ttl time.Duration) error {

	key := constants.RedisPrefixOTPCode + mobile

	if err := repository.client.Set(context, key, code, ttl).Err(); err != nil {
		return fmt.Errorf("redis_otp_set_code_failed: %w", err)
	}

	return nil
}

/*
GetCode retrieves the active OTP code for a mobile number.

Description: Returns apperr.NotFound if the code is absent or expired.

Parameters:
  - context: context.Context
  - mobile: string

Returns:
  - string: The stored code
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisOTPRepository) GetCode(context context.Context, mobile string) (string, error) {

	key := constants.RedisPrefixOTPCode + mobile

	code, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.OTPExpired()
		}
		return "", fmt.Errorf("redis_otp_get_code_failed: %w", err)
	}

	return code, nil
}

/*
DeleteCode removes the active OTP code after use or invalidation.

Parameters:
  - context: context.Context
  - mobile: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisOTPRepository) DeleteCode(context context.Context, mobile string) error {

	key := constants.RedisPrefixOTPCode + mobile

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_otp_delete_code_failed: %w", err)
	}

	return nil
}

/*
IncrementSends bumps the rolling send counter for a mobile number.

Description: The expiry is set only when the key is first created, so the
window is anchored to the first send rather than sliding on each one.

Parameters:
  - context: context.Context
  - mobile: string
  - window: time.Duration

Returns:
  - int64: The counter value after the increment
  - error: Execution errors
*/
func (repository *RedisOTPRepository) IncrementSends(context context.Context, mobile string, window time.Duration) (int64, error) {

	key := constants.RedisPrefixOTPSends + mobile

	count, err := repository.client.Incr(context, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_otp_increment_sends_failed: %w", err)
	}

	if count == 1 {
		if err := repository.client.Expire(context, key, window).Err(); err != nil {
			return 0, fmt.Errorf("redis_otp_sends_expire_failed: %w", err)
		}
	}

	return count, nil
}

/*
IncrementAttempts bumps the verification attempt counter for the active code.

Parameters:
  - context: context.Context
  - mobile: string
  - ttl: time.Duration

Returns:
  - int64: The counter value after the increment
  - error: Execution errors
*/
func (repository *RedisOTPRepository) IncrementAttempts(context context.Context, mobile string, ttl time.Duration) (int64, error) {

	key := constants.RedisPrefixOTPAttempts + mobile

	count, err := repository.client.Incr(context, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_otp_increment_attempts_failed: %w", err)
	}

	if count == 1 {
		if err := repository.client.Expire(context, key, ttl).Err(); err != nil {
			return 0, fmt.Errorf("redis_otp_attempts_expire_failed: %w", err)
		}
	}

	return count, nil
}

/*
ClearAttempts resets the verification attempt counter.

Parameters:
  - context: context.Context
  - mobile: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisOTPRepository) ClearAttempts(context context.Context, mobile string) error {

	key := constants.RedisPrefixOTPAttempts + mobile

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_otp_clear_attempts_failed: %w", err)
	}

	return nil
}
