package main

import (
	"fmt"
	"os"

	"github.com/awmpietro/golang-algorithm-visualizer/cmd/dsaviz/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorMsg("%v", err))
		os.Exit(1)
	}
}
