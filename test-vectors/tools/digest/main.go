// Prints a digest of a directory of generated test vectors, so that two runs of the scenario tests
// with VESTING_DETERMINISM set can be compared for identical output.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/minio/sha256-simd"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Expected exactly one argument, path of directory to digest")
		os.Exit(1)
	}
	digest, count, err := digestDir(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
	fmt.Printf("- %x (%d vectors)\n", digest, count)
}

func digestDir(rootDir string) ([]byte, int, error) {
	var paths []string
	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".json" {
			rel, err := filepath.Rel(rootDir, path)
			if err != nil {
				return err
			}
			paths = append(paths, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Strings(paths)

	h := sha256.New()
	for _, p := range paths {
		data, err := os.ReadFile(filepath.Join(rootDir, filepath.FromSlash(p)))
		if err != nil {
			return nil, 0, err
		}
		fmt.Fprintf(h, "%s\x00%d\x00", p, len(data))
		h.Write(data) // nolint: errcheck
	}
	return h.Sum(nil), len(paths), nil
}
