package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storywalk",
	Short: "A story-driven room navigator with LLM-generated events",
	Long: `storywalk plays a text adventure whose rooms, events, and actions
come from a world definition generated ahead of time from a story.
Staying on the story's canonical route shows the fixed events; straying
from it switches to improvised ones.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
