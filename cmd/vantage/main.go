// ABOUTME: Entry point for the vantage CLI
// ABOUTME: Delegates to the cobra root command

package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
