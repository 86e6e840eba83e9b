package common

import (
	"context"
	"math/rand"
	"time"

	"tgbulk_go/models"
)

// WaitWithCancellation выдерживает случайную паузу в границах delay (секунды)
// и регулярно проверяет контекст, чтобы не зависать на длинных задержках.
// Шаг в пять секунд позволяет завершить работу по требованию достаточно быстро.
func WaitWithCancellation(ctx context.Context, delay models.DelayRange) error {
	if delay.Max < delay.Min {
		delay.Max = delay.Min
	}
	seconds := delay.Min
	if spread := delay.Max - delay.Min; spread > 0 {
		seconds += rand.Intn(spread + 1)
	}
	for remaining := seconds; remaining > 0; {
		step := 5
		if remaining < step {
			step = remaining
		}
		select {
		case <-ctx.Done():
			// Отдаём ошибку контекста, чтобы прерывание обработали выше по стеку.
			return ctx.Err()
		case <-time.After(time.Duration(step) * time.Second):
		}
		remaining -= step
	}
	return nil
}
