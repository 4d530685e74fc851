package main

import (
	"os"

	"github.com/robalobadob/farguessr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
