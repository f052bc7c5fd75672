// Command recordq stores dataset records and answers group-by and sort-by
// queries from the command line or over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/recordq/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
