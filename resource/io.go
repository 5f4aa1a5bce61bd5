package resource

import (
	"context"
	"io"
)

// RateLimitedReader wraps an io.Reader with rate limiting.
type RateLimitedReader struct {
	r     io.Reader
	rc    *Controller
	ctx   context.Context
	burst int
}

// NewRateLimitedReader creates a new RateLimitedReader.
// A nil Controller disables limiting.
func NewRateLimitedReader(ctx context.Context, r io.Reader, rc *Controller) *RateLimitedReader {
	burst := 0
	if rc != nil && rc.ioLimiter != nil {
		burst = rc.ioLimiter.Burst()
	}
	return &RateLimitedReader{
		r:     r,
		rc:    rc,
		ctx:   ctx,
		burst: burst,
	}
}

func (r *RateLimitedReader) Read(p []byte) (n int, err error) {
	// WaitN fails for requests above the burst size, so cap the read.
	if r.burst > 0 && len(p) > r.burst {
		p = p[:r.burst]
	}
	if err := r.rc.AcquireIO(r.ctx, len(p)); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
