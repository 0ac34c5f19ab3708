package main

import (
	"os"

	"github.com/msto63/frege/cmd/frege/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
