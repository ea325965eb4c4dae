package pipeline

import (
	"errors"
	"math/rand/v2"
	"net"
	"time"

	"github.com/dgallion1/grafbreak/internal/source"
)

// MaxRetries is the number of fetch attempts for a URL job.
const MaxRetries = 3

const (
	backoffBase = 500 * time.Millisecond
	backoffCap  = 10 * time.Second
)

// IsRetryable reports whether a fetch failure is transient: a 429 or 5xx
// answer, or a network timeout.
func IsRetryable(err error) bool {
	var retryErr *source.RetryableError
	if errors.As(err, &retryErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// Backoff doubles from 500ms per attempt (0-indexed), capped at 10s, plus up
// to 50% jitter.
func Backoff(attempt int) time.Duration {
	base := backoffCap
	if attempt < 16 {
		base = min(backoffBase<<uint(attempt), backoffCap)
	}
	return base + time.Duration(rand.Int64N(int64(base)/2))
}
