package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		failure(os.Stderr, err)
		os.Exit(1)
	}
}
