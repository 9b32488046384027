package relational

import (
	"context"
	"time"
)

const defaultTimeout = 10 * time.Second

// withTimeout bounds one store call, including the statements it issues.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = defaultTimeout
	}
	return context.WithTimeout(ctx, d)
}
