package main

import (
	"fmt"
	"os"

	"github.com/krysz/cover-checker/cmd/covercheck/app"
)

func main() {
	if err := app.NewCovercheckCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
