package batch

import (
	"context"

	"golang.org/x/time/rate"
)

// rateLimitedReader decorates a Reader, blocking each ReadRecord call on a
// token-bucket limiter. Adapted from the teacher's terminal output
// throttle (internal/terminal/ratelimit.go), which wraps an io.Writer the
// same way: pace the call, pass the error through unchanged.
type rateLimitedReader struct {
	Reader
	limiter *rate.Limiter
}

// RateLimited wraps r so that ReadRecord never returns more often than
// limiter allows. A nil limiter is a configuration error in practice, but
// RateLimited tolerates it by disabling the wait, matching the teacher's
// own nil-limiter no-op convention.
func RateLimited(r Reader, limiter *rate.Limiter) Reader {
	return &rateLimitedReader{Reader: r, limiter: limiter}
}

func (r *rateLimitedReader) ReadRecord(ctx context.Context) (*Record, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return r.Reader.ReadRecord(ctx)
}

var _ Reader = (*rateLimitedReader)(nil)
