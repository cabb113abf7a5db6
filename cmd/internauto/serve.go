package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pragyesh/internauto/internal/server"
)

var (
	servePort   int
	serveOrigin string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the automation API server",
	Long:  `Start an HTTP server that runs automation jobs on request and exposes their status and log lines.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveOrigin, "allowed-origin", "", "CORS origin allowed to call the API (default any)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	origin := serveOrigin
	if origin == "" {
		origin = os.Getenv("INTERNAUTO_ALLOWED_ORIGIN")
	}

	srv := server.New(server.Config{
		Port:          servePort,
		AllowedOrigin: origin,
	})
	return srv.Start()
}

// cmdContext is the root context for CLI-driven runs.
func cmdContext() context.Context {
	return context.Background()
}
