package report

import (
	"context"
	"errors"
	"io"
	"path"

	"github.com/hupe1980/kmeans2d/blobstore"
	"github.com/hupe1980/kmeans2d/codec"
)

// Sink publishes run summaries.
type Sink interface {
	Publish(ctx context.Context, s *Summary) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, s *Summary) error

// Publish implements Sink.
func (f SinkFunc) Publish(ctx context.Context, s *Summary) error { return f(ctx, s) }

// MultiSink publishes to every sink and joins their errors.
type MultiSink []Sink

// Publish implements Sink.
func (m MultiSink) Publish(ctx context.Context, s *Summary) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Publish(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BlobSink stores summaries as <prefix>/<id>.json.
type BlobSink struct {
	store  blobstore.BlobStore
	codec  codec.Codec
	prefix string
	indent string
}

// BlobSinkOption configures a BlobSink.
type BlobSinkOption func(*BlobSink)

// WithCodec sets the summary codec. Default: codec.Default.
func WithCodec(c codec.Codec) BlobSinkOption {
	return func(b *BlobSink) {
		if c != nil {
			b.codec = c
		}
	}
}

// WithPrefix sets the blob name prefix. Default: "runs".
func WithPrefix(prefix string) BlobSinkOption {
	return func(b *BlobSink) {
		b.prefix = prefix
	}
}

// WithIndent stores indented summaries when the codec supports it.
func WithIndent(indent string) BlobSinkOption {
	return func(b *BlobSink) {
		b.indent = indent
	}
}

// NewBlobSink creates a BlobSink over store.
func NewBlobSink(store blobstore.BlobStore, optFns ...BlobSinkOption) *BlobSink {
	b := &BlobSink{
		store:  store,
		codec:  codec.Default,
		prefix: "runs",
	}
	for _, fn := range optFns {
		fn(b)
	}
	return b
}

// Name returns the blob name a summary is stored under.
func (b *BlobSink) Name(s *Summary) string {
	return path.Join(b.prefix, s.ID+".json")
}

// Publish implements Sink.
func (b *BlobSink) Publish(ctx context.Context, s *Summary) error {
	data, err := b.marshal(s)
	if err != nil {
		return err
	}
	return b.store.Put(ctx, b.Name(s), data)
}

func (b *BlobSink) marshal(s *Summary) ([]byte, error) {
	if ind, ok := b.codec.(codec.Indenter); ok && b.indent != "" {
		return ind.MarshalIndent(s, "", b.indent)
	}
	return b.codec.Marshal(s)
}

// Load reads a summary previously stored by Publish.
func (b *BlobSink) Load(ctx context.Context, id string) (*Summary, error) {
	blob, err := b.store.Open(ctx, path.Join(b.prefix, id+".json"))
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	r, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var s Summary
	if err := b.codec.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns the ids of all stored summaries.
func (b *BlobSink) List(ctx context.Context) ([]string, error) {
	names, err := b.store.List(ctx, b.prefix+"/")
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(names))
	for _, n := range names {
		if path.Ext(n) == ".json" {
			ids = append(ids, path.Base(n[:len(n)-len(".json")]))
		}
	}
	return ids, nil
}
