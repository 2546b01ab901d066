package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tatianab/storywalk/internal/config"
	"github.com/tatianab/storywalk/internal/engine"
	"github.com/tatianab/storywalk/internal/images"
	"github.com/tatianab/storywalk/internal/models"
	"github.com/tatianab/storywalk/internal/tui"
	"github.com/tatianab/storywalk/internal/vars"
	"github.com/tatianab/storywalk/internal/world"
)

var playWorldPath string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a generated world",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		worldPath := cfg.WorldPath
		if playWorldPath != "" {
			worldPath = playWorldPath
		}

		def, err := models.LoadWorld(worldPath)
		if err != nil {
			return err
		}

		store, err := vars.Parse(def.Variables)
		if err != nil {
			return fmt.Errorf("world file %s: %w", worldPath, err)
		}

		graph, err := world.FromDefinition(def)
		if err != nil {
			return err
		}

		eng, err := engine.NewEngine(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return err
		}
		defer eng.Close()

		// Attach any pre-rendered illustrations. No renderer is wired, so
		// this only resolves cache hits.
		images.NewCache(cfg.ImageDir, nil).Warm(ctx, graph.Rooms())

		session, err := world.NewSession(ctx, graph, store, eng, def.VisitOrder)
		if err != nil {
			return err
		}

		return tui.Run(session)
	},
}

func init() {
	playCmd.Flags().StringVarP(&playWorldPath, "world", "w", "", "world definition file (default from STORYWALK_WORLD or world.yaml)")
	rootCmd.AddCommand(playCmd)
}
