package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for fillable.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fillable",
		Short: "Coloring-page asset pipeline",
		Long: `fillable turns photos and drawings into coloring-page assets.

Each processed image yields clean binary line art, a label map assigning a
region id to every pixel, JSON region metadata, and a pass/warn/fail quality
classification against a target age group.

Processing presets can be kept in a .fillable.yml profile file; see the
process command for an example.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewProcessCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewPreviewCmd())
	cmd.AddCommand(NewDemoCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
