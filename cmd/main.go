package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stock-advisor",
	Short: "A CLI for managing the Golang Stock Advisor services",
	Long:  `Golang Stock Advisor analyzes stocks, watches price alerts and aggregates portfolio risk...`,
}

func main() {

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
