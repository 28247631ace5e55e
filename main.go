// Package main is the entry point for saferenv.
package main

import (
	"os"

	"github.com/saferenv/saferenv/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
