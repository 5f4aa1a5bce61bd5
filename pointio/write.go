package pointio

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strconv"

	"github.com/hupe1980/kmeans2d/blobstore"
	"github.com/hupe1980/kmeans2d/core"
)

// Write emits one "x y" line per point using the shortest exact representation.
func Write(w io.Writer, points []core.Point) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 64)
	for _, p := range points {
		buf = strconv.AppendFloat(buf[:0], p.X, 'g', -1, 64)
		buf = append(buf, ' ')
		buf = strconv.AppendFloat(buf, p.Y, 'g', -1, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Encode renders points as a point file with the given compression.
func Encode(points []core.Point, c Compression) ([]byte, error) {
	var buf bytes.Buffer
	w, err := c.newWriter(&buf)
	if err != nil {
		return nil, err
	}
	if err := Write(w, points); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteBlob stores points under name, compressed according to its suffix.
func WriteBlob(ctx context.Context, store blobstore.BlobStore, name string, points []core.Point) error {
	data, err := Encode(points, CompressionFor(name))
	if err != nil {
		return err
	}
	return store.Put(ctx, name, data)
}
