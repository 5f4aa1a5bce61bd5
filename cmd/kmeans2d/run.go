package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/kmeans2d"
	"github.com/hupe1980/kmeans2d/blobstore"
	"github.com/hupe1980/kmeans2d/blobstore/minio"
	"github.com/hupe1980/kmeans2d/blobstore/s3"
	"github.com/hupe1980/kmeans2d/core"
	"github.com/hupe1980/kmeans2d/pointio"
	"github.com/hupe1980/kmeans2d/report"
	"github.com/hupe1980/kmeans2d/report/dynamo"
	"github.com/hupe1980/kmeans2d/resource"
)

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger, err := cfg.logger(stderr)
	if err != nil {
		return err
	}

	opts, err := cfg.options()
	if err != nil {
		return err
	}

	var rc *resource.Controller
	if cfg.memLimit > 0 || cfg.ioLimit > 0 {
		rc = resource.NewController(resource.Config{
			MemoryLimitBytes:   cfg.memLimit,
			IOLimitBytesPerSec: cfg.ioLimit,
		})
		opts = append(opts, kmeans2d.WithResourceController(rc))
	}
	opts = append(opts, kmeans2d.WithLogger(logger))

	// Fail on bad options before asking any questions.
	clusterer, err := kmeans2d.New(opts...)
	if err != nil {
		return err
	}

	p := newPrompter(stdin, stdout, cfg.batch)

	if cfg.n < 0 {
		if cfg.n, err = p.int("Enter the number of points (0 to scan the file): ", "n"); err != nil {
			return err
		}
		if cfg.n < 0 {
			return fmt.Errorf("-n: must be >= 0, got %d", cfg.n)
		}
	}

	if cfg.k == 0 {
		if cfg.k, err = p.int("Enter the number of clusters (k): ", "k"); err != nil {
			return err
		}
	}
	if cfg.k < 1 {
		return kmeans2d.ErrInvalidK
	}

	if cfg.file == "" {
		if cfg.file, err = p.line("Enter the file name: ", "file"); err != nil {
			return err
		}
		if cfg.file == "" {
			return fmt.Errorf("%w: -file", errMissing)
		}
	}

	store, name, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	readOpts := []pointio.Option{pointio.WithLimit(cfg.n)}
	if rc != nil {
		readOpts = append(readOpts, pointio.WithResourceController(rc))
	}
	source := cfg.source + ":" + cfg.file

	points, err := pointio.ReadBlob(ctx, store, name, readOpts...)
	logger.LogLoad(ctx, source, len(points), err)
	if err != nil {
		return fmt.Errorf("read %s: %w", cfg.file, err)
	}

	var seeds []core.Point
	if cfg.seeds != "" {
		seeds, err = parseSeeds(cfg.seeds)
	} else {
		seeds, err = p.seeds(cfg.k)
	}
	if err != nil {
		return err
	}
	if err := kmeans2d.ValidateSeeds(cfg.k, seeds); err != nil {
		return err
	}

	res, err := clusterer.Run(ctx, points, seeds)
	if err != nil {
		return err
	}

	if err := report.WriteText(stdout, res, res.Elapsed); err != nil {
		return err
	}

	if cfg.centroidsOut != "" {
		if err := pointio.WriteBlob(ctx, store, cfg.centroidsOut, res.Centroids); err != nil {
			return fmt.Errorf("write centroids: %w", err)
		}
	}

	sink, err := buildSink(ctx, cfg, store)
	if err != nil {
		return err
	}
	if sink != nil {
		if err := sink.Publish(ctx, report.NewSummary(source, res)); err != nil {
			return fmt.Errorf("publish: %w", err)
		}
	}
	return nil
}

// openStore returns the store holding cfg.file and the file's name within
// it. A local store is rooted at the file's directory.
func openStore(ctx context.Context, cfg *config) (blobstore.BlobStore, string, error) {
	switch cfg.source {
	case "local", "":
		return blobstore.NewLocalStore(filepath.Dir(cfg.file)), filepath.Base(cfg.file), nil
	case "s3":
		if cfg.bucket == "" {
			return nil, "", fmt.Errorf("%w: -bucket", errMissing)
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("load aws config: %w", err)
		}
		return s3.NewStore(awss3.NewFromConfig(awsCfg), cfg.bucket, cfg.prefix), cfg.file, nil
	case "minio":
		if cfg.bucket == "" {
			return nil, "", fmt.Errorf("%w: -bucket", errMissing)
		}
		client, err := miniogo.New(cfg.minioEndpoint, &miniogo.Options{
			Creds:  credentials.NewStaticV4(cfg.minioAccessKey, cfg.minioSecretKey, ""),
			Secure: cfg.minioSSL,
		})
		if err != nil {
			return nil, "", fmt.Errorf("minio client: %w", err)
		}
		return minio.NewStore(client, cfg.bucket, cfg.prefix), cfg.file, nil
	default:
		return nil, "", fmt.Errorf("unknown -source %q", cfg.source)
	}
}

// buildSink returns nil when nothing is to be published.
func buildSink(ctx context.Context, cfg *config, store blobstore.BlobStore) (report.Sink, error) {
	var sinks report.MultiSink
	if cfg.publish != "" {
		blobOpts := []report.BlobSinkOption{report.WithPrefix(cfg.publish)}
		if cfg.pretty {
			blobOpts = append(blobOpts, report.WithIndent("  "))
		}
		sinks = append(sinks, report.NewBlobSink(store, blobOpts...))
	}
	if cfg.ddbTable != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		sinks = append(sinks, dynamo.NewLedger(dynamodb.NewFromConfig(awsCfg), cfg.ddbTable))
	}
	if len(sinks) == 0 {
		return nil, nil
	}
	return sinks, nil
}

// exitCode maps run errors to process exit codes.
func exitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case kmeans2d.IsPreconditionError(err), errors.Is(err, errMissing):
		return 2
	default:
		return 1
	}
}
