package main

import (
	"os"

	"appseed/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
