package main

import (
	"fmt"
	"os"

	"github.com/westonized/ballin-octo-wookie/cmd/cardtrick/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
