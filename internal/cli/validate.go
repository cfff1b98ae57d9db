package cli

import (
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/randomtoy/volva-go/internal/config"
	"github.com/randomtoy/volva-go/internal/content"
	"github.com/randomtoy/volva-go/internal/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the rune content files",
	Long: `Validate loads the detail map, the full record list and the daily file with
the same rules the server applies at startup, and reports what it finds.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
		store, err := content.Load(cfg.DetailPath, cfg.FullPath, cfg.DailyPath, cfg.ImageRoot, logger)
		if err != nil {
			color.Red("✗ content is invalid: %v", err)
			return err
		}

		runes := store.Runes()
		if len(runes) == len(domain.FutharkOrder) {
			color.Green("✓ detail map: all %d runes present", len(runes))
		} else {
			color.Yellow("! detail map: %d of %d runes present", len(runes), len(domain.FutharkOrder))
		}

		withImages := 0
		for _, r := range runes {
			if r.HasImage {
				withImages++
			}
		}
		if withImages == len(runes) {
			color.Green("✓ images: all %d assets present", withImages)
		} else {
			color.Yellow("! images: %d of %d runes have an image asset", withImages, len(runes))
		}

		color.Green("✓ full records: %d loaded", len(store.FullRecords()))
		fmt.Fprintln(cmd.OutOrStdout(), "content OK")
		return nil
	},
}
