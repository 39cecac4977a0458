package main

import (
	"fmt"
	"image"
	"io"

	"github.com/spf13/cobra"

	"github.com/linework/fillable"
	"github.com/linework/fillable/detect"
	"github.com/linework/fillable/internal/config"
	"github.com/linework/fillable/internal/report"
)

// NewProcessCmd creates the process command.
func NewProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [image...]",
		Short: "Turn images into coloring-page assets",
		Long: `Process runs each image through the full pipeline: edge detection,
post-processing into binary line art, region extraction, and validation
against the target age group.

For every input it writes the line art, the region label map, a metadata
sidecar, and the validation result into the output directory.

Examples:
  # Process one image with the defaults (family group)
  fillable process drawing.png

  # Kids preset with a colorized preview and a markdown report
  fillable process -g kids --preview -m drawing.png

  # Pick the age group automatically per page
  fillable process --auto drawing.png

  # Input is already black-on-white line art; skip edge detection
  fillable process --binary lineart.png

  # Use a named profile from .fillable.yml
  fillable process -p toddler drawing.png

Profile file (.fillable.yml) example:
  profiles:
    toddler:
      ageGroup: kids
      simplifyRegions: true
      thickness: 5
    detailed:
      ageGroup: adult
      closeKernel: 1`,
		Args: cobra.MinimumNArgs(1),
		RunE: runProcessCmd,
	}

	addProfileFlags(cmd)
	addOutputFlags(cmd)

	return cmd
}

// addProfileFlags registers the flags shared by process and batch that
// override the loaded profile.
func addProfileFlags(cmd *cobra.Command) {
	d := config.DefaultProfile()

	cmd.Flags().StringP("config", "c", "",
		"Profile file path (default: .fillable.yml in current or home directory)")
	cmd.Flags().StringP("profile", "p", "",
		"Profile name from the profile file")

	cmd.Flags().StringP("age-group", "g", d.AgeGroup,
		"Target age group: kids, family, or adult")
	cmd.Flags().Bool("auto", false,
		"Pick the age group automatically per page")

	cmd.Flags().String("engine", "",
		"Edge-detection engine (default: best available)")
	cmd.Flags().Int("blur", d.BlurRadius,
		"Detector blur radius in pixels (0 disables)")
	cmd.Flags().Float64("threshold", d.Threshold,
		"Binarization threshold override in [0, 1] (0 keeps the detector's suggestion)")
	cmd.Flags().Bool("binary", false,
		"Treat inputs as finished line art and skip edge detection")

	cmd.Flags().Int("thickness", d.Thickness,
		"Target line thickness in pixels")
	cmd.Flags().Int("close-kernel", d.CloseKernel,
		"Gap-sealing close radius in pixels (0 disables)")
	cmd.Flags().Int("min-speckle-area", d.MinSpeckleArea,
		"Largest line fragment removed as noise, in pixels (0 disables)")
	cmd.Flags().Bool("simplify", d.SimplifyRegions,
		"Reduce page complexity for young audiences")
	cmd.Flags().Int("min-region-area", d.MinRegionArea,
		"Smallest region kept when simplifying, in pixels")
	cmd.Flags().Int("label-workers", d.LabelWorkers,
		"Worker goroutines for region labeling (0 or 1 runs sequentially)")
}

// addOutputFlags registers the flags selecting which assets are written.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "out",
		"Output directory for generated assets")
	cmd.Flags().Bool("preview", false,
		"Write a colorized region preview per page")
	cmd.Flags().Bool("thumbnail", false,
		"Write a square thumbnail per page")
	cmd.Flags().BoolP("markdown", "m", false,
		"Write a markdown report per page")
}

// buildProfile resolves the processing profile: profile file first, then
// explicit flag overrides.
func buildProfile(cmd *cobra.Command) (config.Profile, error) {
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return config.Profile{}, err
	}
	profileName, err := flags.GetString("profile")
	if err != nil {
		return config.Profile{}, err
	}

	prof := config.DefaultProfile()
	if path := config.FindConfigFile(configPath); path != "" {
		file, err := config.LoadFile(path)
		if err != nil {
			return config.Profile{}, err
		}
		if prof, err = file.Profile(profileName); err != nil {
			return config.Profile{}, err
		}
	} else if configPath != "" {
		return config.Profile{}, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
	} else if profileName != "" {
		return config.Profile{}, fmt.Errorf("%w: %q (no profile file found)", config.ErrProfileNotFound, profileName)
	}

	if flags.Changed("age-group") {
		if prof.AgeGroup, err = flags.GetString("age-group"); err != nil {
			return config.Profile{}, err
		}
	}
	if flags.Changed("auto") {
		if prof.AutoClassify, err = flags.GetBool("auto"); err != nil {
			return config.Profile{}, err
		}
	}
	if flags.Changed("engine") {
		if prof.Engine, err = flags.GetString("engine"); err != nil {
			return config.Profile{}, err
		}
	}
	if flags.Changed("blur") {
		if prof.BlurRadius, err = flags.GetInt("blur"); err != nil {
			return config.Profile{}, err
		}
	}
	if flags.Changed("threshold") {
		if prof.Threshold, err = flags.GetFloat64("threshold"); err != nil {
			return config.Profile{}, err
		}
	}
	if flags.Changed("thickness") {
		if prof.Thickness, err = flags.GetInt("thickness"); err != nil {
			return config.Profile{}, err
		}
	}
	if flags.Changed("close-kernel") {
		if prof.CloseKernel, err = flags.GetInt("close-kernel"); err != nil {
			return config.Profile{}, err
		}
	}
	if flags.Changed("min-speckle-area") {
		if prof.MinSpeckleArea, err = flags.GetInt("min-speckle-area"); err != nil {
			return config.Profile{}, err
		}
	}
	if flags.Changed("simplify") {
		if prof.SimplifyRegions, err = flags.GetBool("simplify"); err != nil {
			return config.Profile{}, err
		}
	}
	if flags.Changed("min-region-area") {
		if prof.MinRegionArea, err = flags.GetInt("min-region-area"); err != nil {
			return config.Profile{}, err
		}
	}
	if flags.Changed("label-workers") {
		if prof.LabelWorkers, err = flags.GetInt("label-workers"); err != nil {
			return config.Profile{}, err
		}
	}

	return prof, nil
}

// outputOptions selects which assets writeAssets persists.
type outputOptions struct {
	dir       string
	binary    bool
	preview   bool
	thumbnail bool
	markdown  bool
}

// getOutputOptions reads the output flag set.
func getOutputOptions(cmd *cobra.Command) (outputOptions, error) {
	flags := cmd.Flags()
	var opts outputOptions
	var err error

	if opts.dir, err = flags.GetString("out"); err != nil {
		return opts, err
	}
	if opts.binary, err = flags.GetBool("binary"); err != nil {
		return opts, err
	}
	if opts.preview, err = flags.GetBool("preview"); err != nil {
		return opts, err
	}
	if opts.thumbnail, err = flags.GetBool("thumbnail"); err != nil {
		return opts, err
	}
	if opts.markdown, err = flags.GetBool("markdown"); err != nil {
		return opts, err
	}
	return opts, nil
}

// runProcessCmd executes the process command.
func runProcessCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(getVerboseFlag(cmd))

	prof, err := buildProfile(cmd)
	if err != nil {
		return err
	}
	if err := prof.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	opts, err := getOutputOptions(cmd)
	if err != nil {
		return err
	}

	var engine detect.Engine
	if !opts.binary {
		if engine, err = detect.New(prof.Engine); err != nil {
			return err
		}
	}

	pipe := prof.Pipeline()
	failed := 0
	for _, path := range args {
		res, err := processOne(pipe, engine, prof.Settings(), path, opts)
		if err != nil {
			return err
		}
		if res.QA.Status == fillable.StatusFail {
			failed++
		}
		printResult(cmd.OutOrStdout(), path, res)
	}

	if failed > 0 {
		logger.Warn("pages failed validation", "failed", failed, "total", len(args))
	}
	return nil
}

// processOne runs the pipeline for one input image and writes its assets.
func processOne(pipe *fillable.Pipeline, eng detect.Engine, s detect.Settings, path string, opts outputOptions) (*fillable.Result, error) {
	img, err := loadImage(path)
	if err != nil {
		return nil, err
	}

	var em *fillable.EdgeMap
	if opts.binary {
		em, err = fillable.EdgeMapFromImage(img, true, fillable.EngineMeta{})
	} else {
		em, err = eng.ExtractLines(img, s)
	}
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	res := pipe.Run(em)
	if err := writeAssets(path, img, res, opts); err != nil {
		return nil, err
	}
	return res, nil
}

// writeAssets persists every asset for one processed page.
func writeAssets(name string, src image.Image, res *fillable.Result, opts outputOptions) error {
	paths := assetPathsFor(opts.dir, name)

	if err := savePNG(paths.lineArt, res.LineArt.Bitmap.Image()); err != nil {
		return err
	}
	if err := savePNG(paths.labels, res.LabelMap.Image()); err != nil {
		return err
	}
	if err := saveFile(paths.metadata, func(w io.Writer) error {
		return report.WriteMetadata(w, res.Metadata)
	}); err != nil {
		return err
	}
	if err := saveFile(paths.qa, func(w io.Writer) error {
		return report.WriteQA(w, res.QA)
	}); err != nil {
		return err
	}

	if opts.preview {
		if err := savePNG(paths.preview, fillable.Preview(res.LabelMap)); err != nil {
			return err
		}
	}
	if opts.thumbnail {
		if err := savePNG(paths.thumb, fillable.Thumbnail(src, fillable.DefaultThumbnailSize)); err != nil {
			return err
		}
	}
	if opts.markdown {
		if err := saveFile(paths.report, func(w io.Writer) error {
			return report.WriteMarkdown(w, name, res)
		}); err != nil {
			return err
		}
	}
	return nil
}

// printResult writes one page's outcome line to stdout.
func printResult(w io.Writer, name string, res *fillable.Result) {
	fmt.Fprintf(w, "%s: %d regions (%s), status %s, recommended %s\n",
		name,
		res.Metadata.TotalRegions,
		res.Metadata.LabelEncoding,
		res.QA.Status,
		res.QA.RecommendedAgeGroup)
}
