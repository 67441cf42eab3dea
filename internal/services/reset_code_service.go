package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/healthportal/domain"
)

// ResetCodeServiceImpl implements domain.ResetCodeService. Codes are
// 6-digit numbers sampled uniformly from [100000, 999999]; the resend
// throttle lives in Redis keyed by email so repeated requests inside the
// window are skipped without revealing whether the account exists.
type ResetCodeServiceImpl struct {
	redisClient *redis.Client
	config      ResetCodeConfig
}

type ResetCodeConfig struct {
	TTL          time.Duration
	ResendWindow time.Duration
}

// NewResetCodeService creates a Redis-backed reset code service
func NewResetCodeService(redisClient *redis.Client, config ResetCodeConfig) domain.ResetCodeService {
	return &ResetCodeServiceImpl{redisClient: redisClient, config: config}
}

// Generate implements domain.ResetCodeService
func (s *ResetCodeServiceImpl) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// CanSend implements domain.ResetCodeService
func (s *ResetCodeServiceImpl) CanSend(ctx context.Context, email string) (bool, int64, error) {
	ttl, err := s.redisClient.TTL(ctx, resendKey(email)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}

	// TTL <= 0 means the key is absent or expired, so the window is open.
	if ttl <= 0 {
		return true, 0, nil
	}
	return false, int64(ttl.Seconds()), nil
}

// MarkSent implements domain.ResetCodeService
func (s *ResetCodeServiceImpl) MarkSent(ctx context.Context, email string) error {
	if err := s.redisClient.Set(ctx, resendKey(email), 1, s.config.ResendWindow).Err(); err != nil {
		return fmt.Errorf("failed to set resend throttle: %w", err)
	}
	return nil
}

func resendKey(email string) string {
	return fmt.Sprintf("reset:res:%s", email)
}
