package main

import (
	"fmt"
	"log"
	"os"

	"lolhtml/pkg/compiler"
	"lolhtml/pkg/utils"
)

// lolcheck validates markup files without generating HTML.
func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s file.lol [file.lol ...]", os.Args[0])
	}

	failed := 0
	for _, path := range os.Args[1:] {
		src, err := utils.ReadSource(path)
		if err != nil {
			log.Fatalf("Failed to read source file: %v", err)
		}
		if err := compiler.Validate(src); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("%s: valid\n", path)
	}
	if failed > 0 {
		os.Exit(1)
	}
}
