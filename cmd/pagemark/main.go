// Package main provides the entry point for the pagemark CLI.
package main

import (
	"os"

	"github.com/pagemark/pagemark/cmd/pagemark/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
