package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/randomtoy/volva-go/internal/config"
	"github.com/randomtoy/volva-go/internal/content"
	"github.com/randomtoy/volva-go/internal/domain"
)

var showCmd = &cobra.Command{
	Use:   "show [rune]",
	Short: "Show a single rune's content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		store, err := content.Load(cfg.DetailPath, cfg.FullPath, cfg.DailyPath, cfg.ImageRoot, logger)
		if err != nil {
			return fmt.Errorf("load content: %w", err)
		}

		var r domain.Rune
		found := false
		for _, candidate := range store.Runes() {
			if strings.EqualFold(candidate.Name, args[0]) {
				r = candidate
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("unknown rune %q", args[0])
		}

		out := cmd.OutOrStdout()
		title := color.New(color.FgHiMagenta, color.Bold)
		section := color.New(color.FgYellow)

		title.Fprintf(out, "%s", r.Name)
		if r.Symbol != "" {
			title.Fprintf(out, "  %s", r.Symbol)
		}
		fmt.Fprintln(out)
		if r.Aett != "" {
			fmt.Fprintf(out, "Aett: %s", r.Aett)
			if r.AettPosition != "" {
				fmt.Fprintf(out, " (position %s)", r.AettPosition)
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out)

		section.Fprintln(out, "Meaning")
		fmt.Fprintln(out, r.Meaning)

		if len(r.Symbolism) > 0 {
			fmt.Fprintln(out)
			section.Fprintln(out, "Symbolism")
			for k, v := range r.Symbolism {
				fmt.Fprintf(out, "  %s: %s\n", k, v)
			}
		}
		if len(r.Potential) > 0 {
			fmt.Fprintln(out)
			section.Fprintln(out, "Potential")
			for _, p := range r.Potential {
				fmt.Fprintf(out, "  - %s\n", p)
			}
		}
		if len(r.PracticalUse) > 0 {
			fmt.Fprintln(out)
			section.Fprintln(out, "Practical use")
			for _, p := range r.PracticalUse {
				fmt.Fprintf(out, "  - %s\n", p)
			}
		}
		if r.AdditionalInfo != "" {
			fmt.Fprintln(out)
			section.Fprintln(out, "Additional info")
			fmt.Fprintln(out, r.AdditionalInfo)
		}

		if rec, ok := store.Full(r.Name); ok {
			fmt.Fprintln(out)
			section.Fprintln(out, "Keywords")
			fmt.Fprintln(out, "  "+strings.Join(rec.Keywords, ", "))
		}

		return nil
	},
}
