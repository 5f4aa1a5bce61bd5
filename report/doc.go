// Package report turns run results into summaries and publishes them.
//
// A Summary is a self-contained record of one run. Sinks publish it:
//
//   - BlobSink stores it as JSON in any blobstore.BlobStore
//   - dynamo.Ledger appends it to a DynamoDB table
//   - MultiSink fans out to several sinks
//
// WriteText renders a result the way the command line prints it.
package report
