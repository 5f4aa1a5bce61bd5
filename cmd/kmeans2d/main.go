// Command kmeans2d clusters a 2-D point file with k-means.
//
// Missing parameters are prompted for on the console unless -batch is set:
//
//	kmeans2d -file points.txt -k 3 -strategy threaded -workers 8
//	kmeans2d -source s3 -bucket my-bucket -file points.txt.zst -k 2 -seeds "0,0;10,10"
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if code := exitCode(err); code != 0 {
		fmt.Fprintf(os.Stderr, "kmeans2d: %v\n", err)
		os.Exit(code)
	}
}
