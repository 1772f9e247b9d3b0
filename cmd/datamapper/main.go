// Package main provides the CLI entrypoint for datamapper.
//
// datamapper is a data-mapping design tool that:
//   - Loads source and target documents through the inspection services
//   - Suggests and validates field mappings
//   - Reads and writes AtlasMap mapping files and ADM catalog archives
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"datamapper/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(cli.GetExitCode(err))
	}
}
