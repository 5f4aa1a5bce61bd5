package report

import (
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/kmeans2d"
)

// WriteText prints a result in the command line format:
//
//	Converged after 2 iterations.
//
//	Final centroids:
//	Centroid 1: (0.00, 0.50)
//	...
//
//	Execution time: 0.000123 seconds
func WriteText(w io.Writer, res *kmeans2d.Result, total time.Duration) error {
	ew := &errWriter{w: w}

	if res.Converged() {
		ew.printf("\nConverged after %d iterations.\n", res.Iterations)
	} else {
		ew.printf("\nReached maximum iterations without full convergence.\n")
	}

	ew.printf("\nFinal centroids:\n")
	for i, c := range res.Centroids {
		ew.printf("Centroid %d: (%.2f, %.2f)\n", i+1, c.X, c.Y)
	}

	ew.printf("\nExecution time: %.6f seconds\n", total.Seconds())
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
