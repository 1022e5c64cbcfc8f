package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/sterliakov/merkle-patricia-trie/trie"
	"github.com/sterliakov/merkle-patricia-trie/trie/store"
)

var secureFlag = &cli.BoolFlag{
	Name:  "secure",
	Usage: "hash keys with Keccak256 before every operation",
}

// rootFile is where the tool persists the trie's current root reference
// between invocations; the Store itself has no notion of "the" root, so
// the CLI front-end owns that bit of state as a sidecar file alongside the
// database directory.
const rootFile = "ROOT"

func openTrie(dir string, secure bool) (*trie.Trie, *store.LevelDBStore, error) {
	db, err := store.OpenLevelDBStore(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database at %s: %w", dir, err)
	}

	root, err := readRoot(dir)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return trie.NewWithRoot(db, root, trie.Config{Secure: secure}), db, nil
}

func readRoot(dir string) (trie.Reference, error) {
	data, err := os.ReadFile(filepath.Join(dir, rootFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading saved root: %w", err)
	}
	root, err := hex.DecodeString(string(data))
	if err != nil {
		return nil, fmt.Errorf("decoding saved root: %w", err)
	}
	return trie.Reference(root), nil
}

func saveRoot(dir string, tr *trie.Trie) error {
	encoded := hex.EncodeToString(tr.Root())
	if err := os.WriteFile(filepath.Join(dir, rootFile), []byte(encoded), 0o644); err != nil {
		return fmt.Errorf("writing saved root: %w", err)
	}
	return nil
}

func dirArg(context *cli.Context) (string, error) {
	if context.Args().Len() < 1 {
		return "", fmt.Errorf("missing directory storing the trie")
	}
	return context.Args().Get(0), nil
}
