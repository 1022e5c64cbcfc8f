package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/sterliakov/merkle-patricia-trie/trie"
)

var Get = cli.Command{
	Action:    get,
	Name:      "get",
	Usage:     "reads the value stored under a key",
	ArgsUsage: "<directory> <key>",
	Flags:     []cli.Flag{secureFlag},
}

func get(context *cli.Context) error {
	dir, err := dirArg(context)
	if err != nil {
		return err
	}
	if context.Args().Len() != 2 {
		return fmt.Errorf("usage: get <directory> <key>")
	}
	key := context.Args().Get(1)

	tr, db, err := openTrie(dir, context.Bool("secure"))
	if err != nil {
		return err
	}
	defer db.Close()

	value, err := tr.Get([]byte(key))
	if errors.Is(err, trie.ErrNotFound) {
		fmt.Printf("key %q not found\n", key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get failed: %w", err)
	}

	fmt.Printf("%s\n", value)
	return nil
}
