package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"tgbulk_go/models"
)

func TestWaitWithCancellationZeroDelay(t *testing.T) {
	start := time.Now()
	if err := WaitWithCancellation(context.Background(), models.DelayRange{}); err != nil {
		t.Fatalf("нулевая пауза: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("нулевая пауза заняла %v", elapsed)
	}
}

func TestWaitWithCancellationCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := WaitWithCancellation(ctx, models.DelayRange{Min: 60, Max: 60})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ожидается context.Canceled, получено %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("отменённый контекст должен прерывать паузу сразу, заняло %v", elapsed)
	}
}
