package pointio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hupe1980/kmeans2d/blobstore"
	"github.com/hupe1980/kmeans2d/core"
	"github.com/hupe1980/kmeans2d/resource"
)

const (
	maxLineBytes  = 1 << 20
	ctxCheckLines = 4096
)

type options struct {
	limit       int
	rc          *resource.Controller
	compression Compression
	detect      bool
}

// Option configures point loading.
type Option func(*options)

// WithLimit reads exactly n points. n <= 0 scans the whole input.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

// WithResourceController throttles reads with the controller's IO limiter.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithCompression overrides suffix based detection.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
		o.detect = false
	}
}

func newOptions(optFns []Option) options {
	o := options{detect: true}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// ReadFile loads points from a local file.
func ReadFile(ctx context.Context, path string, optFns ...Option) ([]core.Point, error) {
	return ReadBlob(ctx, blobstore.NewLocalStore(filepath.Dir(path)), filepath.Base(path), optFns...)
}

// ReadBlob loads points from a blob store.
func ReadBlob(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) ([]core.Point, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	r, err := blobstore.NewReader(ctx, b)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	o := newOptions(optFns)
	if o.detect {
		o.compression = CompressionFor(name)
	}
	return read(ctx, r, o)
}

// Read parses points from r. Compression must be set explicitly.
func Read(ctx context.Context, r io.Reader, optFns ...Option) ([]core.Point, error) {
	o := newOptions(optFns)
	if o.detect {
		o.compression = CompressionNone
	}
	return read(ctx, r, o)
}

func read(ctx context.Context, r io.Reader, o options) ([]core.Point, error) {
	if o.rc != nil {
		r = resource.NewRateLimitedReader(ctx, r, o.rc)
	}

	dr, err := o.compression.newReader(r)
	if err != nil {
		return nil, fmt.Errorf("pointio: %s: %w", o.compression, err)
	}
	defer dr.Close()

	var points []core.Point
	if o.limit > 0 {
		points = make([]core.Point, 0, o.limit)
	}

	sc := bufio.NewScanner(dr)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for sc.Scan() {
		line++
		if line%ctxCheckLines == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		p, ok, err := parseLine(line, sc.Text())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		points = append(points, p)

		if o.limit > 0 && len(points) == o.limit {
			return points, nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if o.limit > 0 && len(points) < o.limit {
		return nil, fmt.Errorf("%w: want %d points, got %d", ErrShortInput, o.limit, len(points))
	}
	return points, nil
}

func parseLine(line int, text string) (core.Point, bool, error) {
	fields := strings.Fields(text)
	switch len(fields) {
	case 0:
		return core.Point{}, false, nil
	case 2:
	default:
		return core.Point{}, false, &ParseError{Line: line, Text: text, Reason: fmt.Sprintf("expected 2 fields, got %d", len(fields))}
	}

	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Point{}, false, &ParseError{Line: line, Text: text, Reason: "invalid x"}
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Point{}, false, &ParseError{Line: line, Text: text, Reason: "invalid y"}
	}

	p := core.Pt(x, y)
	if !p.IsFinite() {
		return core.Point{}, false, &ParseError{Line: line, Text: text, Reason: "non-finite coordinate"}
	}
	return p, true, nil
}
