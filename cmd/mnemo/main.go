// Command mnemo serves and runs the vocabulary enrichment pipeline.
//
// Exit codes: 0 = success, 1 = error.
package main

import "github.com/heartmarshall/mnemo-vocab/internal/cli"

func main() {
	cli.Execute()
}
