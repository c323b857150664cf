package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/anek/cmd/anek"
	"github.com/arthur-debert/anek/internal/version"
)

func main() {
	rootCmd := anek.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "ANEK",
		Section: "1",
		Source:  "anek " + version.Version,
		Manual:  "anek manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
