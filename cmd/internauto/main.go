// Package main provides the entry point for the Internshala automation CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "internauto",
	Short: "Internshala application automation",
	Long:  "Internauto logs into Internshala with a real browser, reads your stated preferences, filters internship listings, and submits applications automatically.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
