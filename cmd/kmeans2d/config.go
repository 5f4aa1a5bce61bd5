package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hupe1980/kmeans2d"
	"github.com/hupe1980/kmeans2d/core"
)

type config struct {
	// Input.
	source string
	file   string
	n      int
	k      int
	seeds  string
	batch  bool

	// Remote stores.
	bucket         string
	prefix         string
	minioEndpoint  string
	minioAccessKey string
	minioSecretKey string
	minioSSL       bool

	// Algorithm.
	strategy      string
	workers       int
	tree          bool
	blockSize     int
	atomics       string
	maxIterations int
	tolerance     float64
	perCoordinate bool

	// Resources.
	memLimit int64
	ioLimit  int64

	// Output.
	publish      string
	pretty       bool
	ddbTable     string
	centroidsOut string
	logLevel     string
	logJSON      bool
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("kmeans2d", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.source, "source", "local", "point source: local, s3 or minio")
	fs.StringVar(&cfg.file, "file", "", "point file name (.zst, .gz and .lz4 are decompressed)")
	fs.IntVar(&cfg.n, "n", -1, "number of points to read; 0 scans the whole file, -1 prompts")
	fs.IntVar(&cfg.k, "k", 0, "number of clusters; 0 prompts")
	fs.StringVar(&cfg.seeds, "seeds", "", `initial centroids as "x,y;x,y;..."; empty prompts`)
	fs.BoolVar(&cfg.batch, "batch", false, "never prompt; missing parameters are errors")

	fs.StringVar(&cfg.bucket, "bucket", "", "bucket for s3 and minio sources")
	fs.StringVar(&cfg.prefix, "prefix", "", "key prefix for s3 and minio sources")
	fs.StringVar(&cfg.minioEndpoint, "minio-endpoint", "localhost:9000", "minio endpoint")
	fs.StringVar(&cfg.minioAccessKey, "minio-access-key", "", "minio access key")
	fs.StringVar(&cfg.minioSecretKey, "minio-secret-key", "", "minio secret key")
	fs.BoolVar(&cfg.minioSSL, "minio-ssl", false, "use TLS for minio")

	fs.StringVar(&cfg.strategy, "strategy", "sequential", "sequential, threaded or data-parallel")
	fs.IntVar(&cfg.workers, "workers", 0, "threaded worker count; 0 uses GOMAXPROCS")
	fs.BoolVar(&cfg.tree, "tree", false, "threaded: merge partial sums pairwise")
	fs.IntVar(&cfg.blockSize, "block-size", kmeans2d.DefaultBlockSize, "data-parallel lanes per block")
	fs.StringVar(&cfg.atomics, "atomics", "auto", "data-parallel atomics: auto, on or off")
	fs.IntVar(&cfg.maxIterations, "max-iter", kmeans2d.DefaultMaxIterations, "iteration budget")
	fs.Float64Var(&cfg.tolerance, "tol", kmeans2d.DefaultTolerance, "convergence tolerance")
	fs.BoolVar(&cfg.perCoordinate, "per-coordinate", false, "compare |dx| and |dy| instead of Euclidean shift")

	fs.Int64Var(&cfg.memLimit, "mem-limit", 0, "memory budget in bytes for run storage; 0 is unlimited")
	fs.Int64Var(&cfg.ioLimit, "io-limit", 0, "read throughput limit in bytes/s; 0 is unlimited")

	fs.StringVar(&cfg.publish, "publish", "", "store a JSON summary under this prefix of the source store (next to -file for local)")
	fs.BoolVar(&cfg.pretty, "pretty", false, "indent published JSON summaries")
	fs.StringVar(&cfg.ddbTable, "ddb-table", "", "record the run in this DynamoDB table")
	fs.StringVar(&cfg.centroidsOut, "centroids-out", "", "write final centroids to this name in the source store (next to -file for local)")
	fs.StringVar(&cfg.logLevel, "log-level", "", "debug, info, warn or error; empty disables logging")
	fs.BoolVar(&cfg.logJSON, "log-json", false, "log as JSON")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *config) options() ([]kmeans2d.Option, error) {
	strategy, err := kmeans2d.ParseStrategy(c.strategy)
	if err != nil {
		return nil, err
	}

	opts := []kmeans2d.Option{
		kmeans2d.WithStrategy(strategy),
		kmeans2d.WithTreeMerge(c.tree),
		kmeans2d.WithBlockSize(c.blockSize),
		kmeans2d.WithMaxIterations(c.maxIterations),
		kmeans2d.WithTolerance(c.tolerance),
	}
	if c.workers > 0 {
		opts = append(opts, kmeans2d.WithWorkers(c.workers))
	}
	if c.perCoordinate {
		opts = append(opts, kmeans2d.WithConvergence(kmeans2d.ConvergencePerCoordinate))
	}

	switch strings.ToLower(c.atomics) {
	case "auto", "":
	case "on", "true", "1":
		opts = append(opts, kmeans2d.WithForceAtomics(true))
	case "off", "false", "0":
		opts = append(opts, kmeans2d.WithForceAtomics(false))
	default:
		return nil, fmt.Errorf("invalid -atomics %q", c.atomics)
	}
	return opts, nil
}

func (c *config) logger(w io.Writer) (*kmeans2d.Logger, error) {
	if c.logLevel == "" {
		return kmeans2d.NoopLogger(), nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid -log-level %q", c.logLevel)
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.logJSON {
		return kmeans2d.NewLogger(slog.NewJSONHandler(w, opts)), nil
	}
	return kmeans2d.NewLogger(slog.NewTextHandler(w, opts)), nil
}

// parseSeeds parses "x,y;x,y". Whitespace around numbers is ignored.
func parseSeeds(s string) ([]core.Point, error) {
	var seeds []core.Point
	for i, pair := range strings.Split(s, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		p, err := parsePair(strings.ReplaceAll(pair, ",", " "))
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", i+1, err)
		}
		seeds = append(seeds, p)
	}
	if len(seeds) == 0 {
		return nil, errors.New("no seeds")
	}
	return seeds, nil
}

func parsePair(s string) (core.Point, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return core.Point{}, fmt.Errorf("expected \"x y\", got %q", s)
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return core.Point{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return core.Point{}, err
	}
	return core.Pt(x, y), nil
}
