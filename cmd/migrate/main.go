package main

import (
	"fmt"
	"os"

	"github.com/ondieki1237/stayfresh-sub001/internal/adapter/cli"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := cli.RootCommand(cli.OpenStore).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
