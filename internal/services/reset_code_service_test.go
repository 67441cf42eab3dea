package services

import (
	"context"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestResetCodeService(t *testing.T) (*ResetCodeServiceImpl, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewResetCodeService(client, ResetCodeConfig{
		TTL:          15 * time.Minute,
		ResendWindow: time.Minute,
	})
	return svc.(*ResetCodeServiceImpl), mr
}

func TestResetCodeServiceImpl_Generate(t *testing.T) {
	svc, _ := newTestResetCodeService(t)
	pattern := regexp.MustCompile(`^\d{6}$`)

	for i := 0; i < 100; i++ {
		code, err := svc.Generate()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !pattern.MatchString(code) {
			t.Fatalf("expected a 6-digit code, got %q", code)
		}
		n, _ := strconv.Atoi(code)
		if n < 100000 || n > 999999 {
			t.Fatalf("code %d out of range", n)
		}
	}
}

func TestResetCodeServiceImpl_ResendWindow(t *testing.T) {
	svc, mr := newTestResetCodeService(t)
	ctx := context.Background()
	email := "jane@example.com"

	ok, wait, err := svc.CanSend(ctx, email)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || wait != 0 {
		t.Fatalf("expected open window before first send, got ok=%v wait=%d", ok, wait)
	}

	if err := svc.MarkSent(ctx, email); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, wait, err = svc.CanSend(ctx, email)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected closed window right after a send")
	}
	if wait <= 0 || wait > 60 {
		t.Fatalf("expected remaining seconds within the window, got %d", wait)
	}

	// The window reopens once the throttle key expires.
	mr.FastForward(61 * time.Second)

	ok, _, err = svc.CanSend(ctx, email)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected open window after the throttle expired")
	}
}

func TestResetCodeServiceImpl_WindowsArePerEmail(t *testing.T) {
	svc, _ := newTestResetCodeService(t)
	ctx := context.Background()

	if err := svc.MarkSent(ctx, "jane@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, _, err := svc.CanSend(ctx, "other@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("throttle for one email must not affect another")
	}
}
