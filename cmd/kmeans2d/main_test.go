package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/kmeans2d"
	"github.com/hupe1980/kmeans2d/core"
	"github.com/hupe1980/kmeans2d/pointio"
)

const fourPoints = "0 0\n0 1\n10 10\n10 11\n"

func writePoints(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), err
}

func TestRunBatch(t *testing.T) {
	path := writePoints(t, fourPoints)

	for _, strategy := range []string{"sequential", "threaded", "data-parallel"} {
		t.Run(strategy, func(t *testing.T) {
			out, err := runCLI(t, "",
				"-batch", "-n", "0", "-k", "2", "-file", path,
				"-seeds", "0,0;10,10", "-strategy", strategy, "-workers", "2")
			require.NoError(t, err)

			assert.Contains(t, out, "Converged after 2 iterations.")
			assert.Contains(t, out, "Centroid 1: (0.00, 0.50)")
			assert.Contains(t, out, "Centroid 2: (10.00, 10.50)")
			assert.Contains(t, out, "Execution time: ")
		})
	}
}

func TestRunInteractive(t *testing.T) {
	path := writePoints(t, fourPoints)

	stdin := "0\n2\n" + path + "\n0 0\n10 10\n"
	out, err := runCLI(t, stdin)
	require.NoError(t, err)

	assert.Contains(t, out, "Enter the number of points (0 to scan the file): ")
	assert.Contains(t, out, "Enter the number of clusters (k): ")
	assert.Contains(t, out, "Enter coordinates for centroid 1 (x y): ")
	assert.Contains(t, out, "Enter coordinates for centroid 2 (x y): ")
	assert.Contains(t, out, "Centroid 2: (10.00, 10.50)")
}

func TestRunPointLimit(t *testing.T) {
	path := writePoints(t, fourPoints)

	out, err := runCLI(t, "", "-batch", "-n", "2", "-k", "1", "-file", path, "-seeds", "5,5")
	require.NoError(t, err)
	assert.Contains(t, out, "Centroid 1: (0.00, 0.50)")

	_, err = runCLI(t, "", "-batch", "-n", "10", "-k", "1", "-file", path, "-seeds", "5,5")
	assert.ErrorIs(t, err, pointio.ErrShortInput)
}

func TestRunMaxIterations(t *testing.T) {
	path := writePoints(t, fourPoints)

	out, err := runCLI(t, "", "-batch", "-n", "0", "-k", "2", "-file", path,
		"-seeds", "0,0;0,1", "-max-iter", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Reached maximum iterations without full convergence.")
}

func TestRunOutputs(t *testing.T) {
	path := writePoints(t, fourPoints)
	dir := filepath.Dir(path)

	_, err := runCLI(t, "", "-batch", "-n", "0", "-k", "2", "-file", path,
		"-seeds", "0,0;10,10", "-publish", "runs", "-pretty", "-centroids-out", "centroids.txt")
	require.NoError(t, err)

	centroids, err := pointio.ReadFile(context.Background(), filepath.Join(dir, "centroids.txt"))
	require.NoError(t, err)
	assert.Equal(t, []core.Point{core.Pt(0, 0.5), core.Pt(10, 10.5)}, centroids)

	matches, err := filepath.Glob(filepath.Join(dir, "runs", "sequential-*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	summary, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(summary), "{\n  \""))
}

// slowReader hands out one byte per Read after a pause.
type slowReader struct {
	data  []byte
	pause time.Duration
}

func (r *slowReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	time.Sleep(r.pause)
	p[0] = r.data[0]
	r.data = r.data[1:]
	return 1, nil
}

func TestRunExecutionTimeExcludesPrompts(t *testing.T) {
	path := writePoints(t, fourPoints)

	stdin := &slowReader{data: []byte("0 0\n10 10\n"), pause: 20 * time.Millisecond}
	var stdout, stderr bytes.Buffer
	start := time.Now()
	err := run(context.Background(), []string{"-n", "0", "-k", "2", "-file", path}, stdin, &stdout, &stderr)
	require.NoError(t, err)
	require.Greater(t, time.Since(start), 200*time.Millisecond)

	out := stdout.String()
	i := strings.Index(out, "Execution time: ")
	require.GreaterOrEqual(t, i, 0, out)

	var secs float64
	_, err = fmt.Sscanf(out[i:], "Execution time: %f seconds", &secs)
	require.NoError(t, err)
	assert.Less(t, secs, 0.1)
}

func TestRunErrors(t *testing.T) {
	path := writePoints(t, fourPoints)

	tests := []struct {
		name     string
		stdin    string
		args     []string
		target   error
		exitCode int
	}{
		{
			name:     "missing k in batch mode",
			args:     []string{"-batch", "-n", "0", "-file", path},
			target:   errMissing,
			exitCode: 2,
		},
		{
			name:     "input ends before seeds",
			stdin:    "0 0\n",
			args:     []string{"-n", "0", "-k", "2", "-file", path},
			target:   errMissing,
			exitCode: 2,
		},
		{
			name:     "seed count differs from k",
			args:     []string{"-batch", "-n", "0", "-k", "3", "-file", path, "-seeds", "0,0;1,1"},
			target:   kmeans2d.ErrSeedCount,
			exitCode: 2,
		},
		{
			name:     "k exceeds points",
			args:     []string{"-batch", "-n", "0", "-k", "5", "-file", path, "-seeds", "0,0;1,1;2,2;3,3;4,4"},
			target:   kmeans2d.ErrTooManyClusters,
			exitCode: 2,
		},
		{
			name:     "negative k",
			args:     []string{"-batch", "-n", "0", "-k", "-1", "-file", path},
			target:   kmeans2d.ErrInvalidK,
			exitCode: 2,
		},
		{
			name:     "missing file",
			args:     []string{"-batch", "-n", "0", "-k", "1", "-file", filepath.Join(t.TempDir(), "nope.txt"), "-seeds", "0,0"},
			target:   os.ErrNotExist,
			exitCode: 1,
		},
		{
			name:     "bad tolerance",
			args:     []string{"-batch", "-tol", "-1"},
			target:   kmeans2d.ErrInvalidConfig,
			exitCode: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, tt.exitCode, exitCode(err))
		})
	}
}

func TestRunRejectsBadFlags(t *testing.T) {
	_, err := runCLI(t, "", "-batch", "-atomics", "sometimes")
	assert.ErrorContains(t, err, "-atomics")

	_, err = runCLI(t, "", "-batch", "-strategy", "quantum")
	assert.Error(t, err)

	_, err = runCLI(t, "", "-batch", "-log-level", "loud")
	assert.ErrorContains(t, err, "-log-level")

	_, err = runCLI(t, "", "-batch", "-n", "0", "-k", "1", "-file", "x", "-source", "ftp")
	assert.ErrorContains(t, err, "unknown -source")

	_, err = runCLI(t, "", "-batch", "-n", "0", "-k", "1", "-file", "x", "-source", "s3")
	assert.ErrorIs(t, err, errMissing)

	_, err = runCLI(t, "", "-h")
	assert.True(t, errors.Is(err, flag.ErrHelp))
	assert.Equal(t, 0, exitCode(err))
}

func TestParseSeeds(t *testing.T) {
	seeds, err := parseSeeds("0,0; 1.5, -2 ;1e3,4")
	require.NoError(t, err)
	assert.Equal(t, []core.Point{core.Pt(0, 0), core.Pt(1.5, -2), core.Pt(1000, 4)}, seeds)

	for _, bad := range []string{"", ";", "1", "1,2,3", "a,b"} {
		_, err := parseSeeds(bad)
		assert.Error(t, err, bad)
	}
}
