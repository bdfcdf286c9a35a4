package main

import (
	"os"

	"github.com/viant/mcmcrun/cmd"
)

func main() {
	cmd.Run(os.Args[1:])
}
