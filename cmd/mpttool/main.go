// Command mpttool exercises put/get/delete/roothash against a
// LevelDB-backed trie.
//
// Run using
//
//	go run ./cmd/mpttool <command> <flags>
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "MPT Toolbox",
		Usage: "inspect and mutate a LevelDB-backed Merkle Patricia Trie",
		Commands: []*cli.Command{
			&Put,
			&Get,
			&Delete,
			&RootHash,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
