package main

import (
	"os"

	"github.com/mechmind-dwv/mcalc/cmd/mcalc/cmd"
)

func main() {
	os.Exit(cmd.Execute(os.Args[1:]))
}
