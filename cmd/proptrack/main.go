package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "proptrack",
		Short: "Single-tenant property management dashboard",
	}

	rootCmd.AddCommand(
		summaryCmd(),
		timelineCmd(),
		exportCmd(),
		backupCmd(),
		restoreCmd(),
		seedCmd(),
		resetCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
