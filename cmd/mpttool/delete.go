package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/sterliakov/merkle-patricia-trie/trie"
)

var Delete = cli.Command{
	Action:    deleteKey,
	Name:      "delete",
	Usage:     "removes a key from the trie",
	ArgsUsage: "<directory> <key>",
	Flags:     []cli.Flag{secureFlag},
}

func deleteKey(context *cli.Context) error {
	dir, err := dirArg(context)
	if err != nil {
		return err
	}
	if context.Args().Len() != 2 {
		return fmt.Errorf("usage: delete <directory> <key>")
	}
	key := context.Args().Get(1)

	tr, db, err := openTrie(dir, context.Bool("secure"))
	if err != nil {
		return err
	}
	defer db.Close()

	if err := tr.Delete([]byte(key)); err != nil {
		if errors.Is(err, trie.ErrNotFound) {
			fmt.Printf("key %q not found\n", key)
			return nil
		}
		return fmt.Errorf("delete failed: %w", err)
	}
	if err := saveRoot(dir, tr); err != nil {
		return err
	}

	fmt.Printf("root hash: %x\n", tr.RootHash())
	return nil
}
