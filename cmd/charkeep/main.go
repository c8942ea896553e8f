package main

import (
	"github.com/aweston/charkeep/internal/cli"
)

func main() {
	cli.Execute()
}
