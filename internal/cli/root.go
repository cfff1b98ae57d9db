// Package cli wires the volvad commands.
package cli

import "github.com/spf13/cobra"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "volvad",
	Short: "Völva, a Norse rune-divination service",
	Long: `Volvad serves the Völva rune oracle over HTTP: browse the Elder Futhark,
draw a daily rune and rune spreads, and ask the seeress for a prophecy voiced
by a chat-completion model.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	rootCmd.AddCommand(serveCmd, validateCmd, showCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
