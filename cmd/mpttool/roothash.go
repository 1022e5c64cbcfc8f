package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var RootHash = cli.Command{
	Action:    rootHash,
	Name:      "roothash",
	Usage:     "prints the trie's current root hash",
	ArgsUsage: "<directory>",
	Flags:     []cli.Flag{secureFlag},
}

func rootHash(context *cli.Context) error {
	dir, err := dirArg(context)
	if err != nil {
		return err
	}

	tr, db, err := openTrie(dir, context.Bool("secure"))
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Printf("%x\n", tr.RootHash())
	return nil
}
