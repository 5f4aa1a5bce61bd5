// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "datasets/")
//
//	points, err := pointio.ReadBlob(ctx, store, "blobs.txt.zst")
//
// # Features
//
//   - Range reads for streaming point files
//   - Managed (multipart) uploads for results
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
