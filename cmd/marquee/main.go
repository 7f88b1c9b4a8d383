package main

import (
	"os"

	"github.com/vpckso/marquee/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Run(os.Args, version))
}
