package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "zimextract",
	Short: "zimextract - extract ZIM archives to a filesystem tree",
	Long: `zimextract reads a ZIM archive (the offline-encyclopedia container
format) and writes its articles to an ordinary directory tree, one file
per directory entry, with redirects materialized as hard links.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
