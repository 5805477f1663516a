package main

import (
	"os"

	"github.com/promptsec/promptval/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
