// Command fuzzifier estimates fuzzy concepts for a value matrix and turns
// the matrix into fuzzy-set membership tables.
//
//	fuzzifier concepts --mtx values.tsv --config config.yaml --output concepts.json
//	fuzzifier fuzzify  --mtx values.tsv --concept concepts.json --output out/
//	fuzzifier config init > config.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Injected via ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
