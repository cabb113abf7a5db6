package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/pragyesh/internauto/internal/bot"
	"github.com/pragyesh/internauto/internal/config"
)

var (
	runEmail        string
	runPassword     string
	runLimit        int
	runHeadless     bool
	runChromeBinary string
	runLogFile      string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the application automation once",
	Long:  `Run the full automation workflow: log in, extract preferences, scan and filter internship listings, and submit up to --limit applications.`,
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runEmail, "email", "", "Internshala login email (or "+config.EnvEmail+")")
	runCmd.Flags().StringVar(&runPassword, "password", "", "Internshala login password (or "+config.EnvPassword+")")
	runCmd.Flags().IntVar(&runLimit, "limit", bot.DefaultLimit, "Maximum number of applications to submit")
	runCmd.Flags().BoolVar(&runHeadless, "headless", false, "Run the browser in headless mode")
	runCmd.Flags().StringVar(&runChromeBinary, "chrome-binary", "", "Explicit Chrome executable path")
	runCmd.Flags().StringVar(&runLogFile, "log-file", "", "Also write log output to this file")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	// Only an explicitly set --limit overrides the env-configured limit.
	limit := 0
	if cmd.Flags().Changed("limit") {
		limit = runLimit
	}

	cfg := config.FromEnv().MergeFlags(runEmail, runPassword, runChromeBinary, runLogFile, limit, runHeadless)
	if cfg.Limit == 0 {
		cfg.Limit = bot.DefaultLimit
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("could not open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}

	log.Printf("Starting Internshala automation. Will apply to up to %d internships.", cfg.Limit)

	result := bot.New(bot.Options{
		Email:        cfg.Email,
		Password:     cfg.Password,
		Limit:        cfg.Limit,
		Headless:     cfg.Headless,
		ChromeBinary: cfg.ChromeBinary,
	}).Run(cmdContext())

	if !result.Success {
		return fmt.Errorf("automation run failed")
	}
	log.Printf("Automation completed: %d applications submitted", result.SubmittedCount)
	return nil
}
