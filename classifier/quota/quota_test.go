package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"glana/config"
)

func limiterWith(perMinute, perDay int) *Limiter {
	cfg := config.AppConfig{}
	cfg.ClassifierQuota.RequestsPerMinute = perMinute
	cfg.ClassifierQuota.RequestsPerDay = perDay
	return NewLimiterFromConfig(cfg)
}

func TestDailyLimitExhaustion(t *testing.T) {
	l := limiterWith(0, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.WaitAndReserve(ctx)
		if err != nil {
			t.Fatalf("unexpected error on call %d: %v", i+1, err)
		}
		if !ok {
			t.Fatalf("expected call %d within the daily limit", i+1)
		}
	}

	// 한도 소진: 에러 없이 스킵 신호만 돌려준다.
	ok, err := l.WaitAndReserve(ctx)
	if err != nil {
		t.Fatalf("unexpected error past the limit: %v", err)
	}
	if ok {
		t.Fatal("expected reservation to be denied past the daily limit")
	}
}

func TestUnlimitedWhenUnconfigured(t *testing.T) {
	l := limiterWith(0, 0)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		ok, err := l.WaitAndReserve(ctx)
		if err != nil || !ok {
			t.Fatalf("expected unlimited reservations, got ok=%v err=%v", ok, err)
		}
	}
}

func TestRateWaitHonorsContextCancellation(t *testing.T) {
	l := limiterWith(1, 0) // 분당 1회 -> 호출 간 60초 간격

	ok, err := l.WaitAndReserve(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected first reservation to pass, got ok=%v err=%v", ok, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	ok, err = l.WaitAndReserve(ctx)
	if ok {
		t.Fatal("expected second reservation to be blocked by the interval")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline error, got %v", err)
	}
}
