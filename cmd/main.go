package main

import (
	"fmt"
	"os"

	"github.com/haxsysgit/coursework-backend/internal/cli"
)

// @title Lessons API
// @version 1.0
// @description Lessons catalog and ordering API
// @BasePath /
func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
