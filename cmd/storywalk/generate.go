package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tatianab/storywalk/internal/config"
	"github.com/tatianab/storywalk/internal/engine"
)

var generateOut string

var generateCmd = &cobra.Command{
	Use:   "generate <story.txt>",
	Short: "Generate a world definition from a story excerpt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		story, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		eng, err := engine.NewEngine(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return err
		}
		defer eng.Close()

		def, err := eng.GenerateWorld(ctx, string(story))
		if err != nil {
			return err
		}

		if err := def.Save(generateOut); err != nil {
			return err
		}
		fmt.Printf("Wrote %d rooms to %s\n", len(def.Rooms), generateOut)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "world.yaml", "output world file")
	rootCmd.AddCommand(generateCmd)
}
