package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linework/fillable"
)

// NewPreviewCmd creates the preview command.
func NewPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <labels.png>",
		Short: "Colorize a label map for manual review",
		Long: `Preview renders a label map image into a colorized view where every region
gets its own color and line pixels stay white.

The label encoding is read from the metadata sidecar when one is given,
otherwise from the --encoding flag; it is never guessed from the image.

Examples:
  fillable preview out/drawing_labels.png --metadata out/drawing_metadata.json
  fillable preview out/drawing_labels.png --encoding rgb24 -o check.png`,
		Args: cobra.ExactArgs(1),
		RunE: runPreviewCmd,
	}

	cmd.Flags().String("metadata", "",
		"Metadata sidecar to read the label encoding from")
	cmd.Flags().String("encoding", fillable.EncodingGray8.String(),
		"Label encoding: grayscale8 or rgb24")
	cmd.Flags().StringP("output", "o", "",
		"Output path (default: <labels>_preview.png)")

	return cmd
}

// runPreviewCmd executes the preview command.
func runPreviewCmd(cmd *cobra.Command, args []string) error {
	setupLogger(getVerboseFlag(cmd))
	flags := cmd.Flags()

	metaPath, err := flags.GetString("metadata")
	if err != nil {
		return err
	}
	encName, err := flags.GetString("encoding")
	if err != nil {
		return err
	}
	outPath, err := flags.GetString("output")
	if err != nil {
		return err
	}

	var enc fillable.Encoding
	if metaPath != "" {
		meta, err := loadMetadata(metaPath)
		if err != nil {
			return err
		}
		enc = meta.LabelEncoding
	} else if enc, err = fillable.ParseEncoding(encName); err != nil {
		return err
	}

	img, err := loadImage(args[0])
	if err != nil {
		return err
	}
	lm, err := fillable.LabelMapFromImage(img, enc)
	if err != nil {
		return err
	}

	if outPath == "" {
		outPath = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "_preview.png"
	}
	if err := savePNG(outPath, fillable.Preview(lm)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outPath)
	return nil
}
