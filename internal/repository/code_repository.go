package repository

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Code purposes. Each purpose has its own key space so a login OTP can never
// be used as a password reset code.
const (
	PurposeOTP   = "otp"
	PurposeReset = "reset"
)

// MaxCodeAttempts is how many wrong guesses burn a code.
const MaxCodeAttempts = 5

var (
	ErrCodeInvalid     = errors.New("invalid code")
	ErrCodeExpired     = errors.New("code expired or not found")
	ErrTooManyAttempts = errors.New("too many attempts")
)

// CodeRepository stores one-time codes in Redis with a TTL.
type CodeRepository struct {
	rdb *redis.Client
}

func NewCodeRepository(rdb *redis.Client) *CodeRepository {
	return &CodeRepository{rdb: rdb}
}

func codeKey(purpose, email string) string {
	return fmt.Sprintf("code:%s:%s", purpose, email)
}

func attemptsKey(purpose, email string) string {
	return fmt.Sprintf("code:%s:%s:attempts", purpose, email)
}

// Save replaces any previous code for (purpose, email) and resets the
// attempt counter.
func (r *CodeRepository) Save(ctx context.Context, purpose, email, code string, ttl time.Duration) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, codeKey(purpose, email), code, ttl)
		pipe.Del(ctx, attemptsKey(purpose, email))
		return nil
	})
	return err
}

// Verify consumes the code when it matches. A code can be redeemed once:
// of two concurrent correct guesses only the one whose DEL removed the key
// succeeds.
func (r *CodeRepository) Verify(ctx context.Context, purpose, email, code string) error {
	key := codeKey(purpose, email)
	akey := attemptsKey(purpose, email)

	stored, err := r.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCodeExpired
	}
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		attempts, err := r.rdb.Incr(ctx, akey).Result()
		if err != nil {
			return err
		}
		if ttl, err := r.rdb.PTTL(ctx, key).Result(); err == nil && ttl > 0 {
			r.rdb.PExpire(ctx, akey, ttl)
		}
		if attempts >= MaxCodeAttempts {
			r.rdb.Del(ctx, key, akey)
			return ErrTooManyAttempts
		}
		return ErrCodeInvalid
	}

	deleted, err := r.rdb.Del(ctx, key).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrCodeExpired
	}
	r.rdb.Del(ctx, akey)
	return nil
}
