// Package main provides the entry point for the resume-review pipeline CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_review",
	Short: "Resume Review submission pipeline",
	Long:  "Resume Review stores uploaded resumes, scores them with a deterministic rule-based analyzer, and delivers improvement reports by email with durable retries.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
