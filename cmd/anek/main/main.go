package main

import (
	"os"

	"github.com/arthur-debert/anek/cmd/anek"
)

func main() {
	os.Exit(anek.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
