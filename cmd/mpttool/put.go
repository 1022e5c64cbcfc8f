package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var Put = cli.Command{
	Action:    put,
	Name:      "put",
	Usage:     "inserts or overwrites a key/value pair",
	ArgsUsage: "<directory> <key> <value>",
	Flags:     []cli.Flag{secureFlag},
}

func put(context *cli.Context) error {
	dir, err := dirArg(context)
	if err != nil {
		return err
	}
	if context.Args().Len() != 3 {
		return fmt.Errorf("usage: put <directory> <key> <value>")
	}
	key, value := context.Args().Get(1), context.Args().Get(2)

	tr, db, err := openTrie(dir, context.Bool("secure"))
	if err != nil {
		return err
	}
	defer db.Close()

	if err := tr.Put([]byte(key), []byte(value)); err != nil {
		return fmt.Errorf("put failed: %w", err)
	}
	if err := saveRoot(dir, tr); err != nil {
		return err
	}

	fmt.Printf("root hash: %x\n", tr.RootHash())
	return nil
}
