package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/linework/fillable"
	"github.com/linework/fillable/detect"
	"github.com/linework/fillable/internal/report"
)

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [dir|image...]",
		Short: "Process a whole directory of images concurrently",
		Long: `Batch runs the pipeline over every image in the given directories (and any
images named directly), several pages in flight at once. Each page gets the
same asset set as the process command; unreadable images are skipped with a
warning instead of aborting the run.

Examples:
  # Process a directory with one worker per CPU
  fillable batch ./drawings

  # Four workers, auto-classified age groups, batch report
  fillable batch -w 4 --auto --markdown ./drawings

  # Write the aggregate counts next to the assets
  fillable batch --summary ./drawings`,
		Args: cobra.MinimumNArgs(1),
		RunE: runBatchCmd,
	}

	addProfileFlags(cmd)
	addOutputFlags(cmd)
	cmd.Flags().IntP("workers", "w", 0,
		"Number of pages processed concurrently (0 means one per CPU)")
	cmd.Flags().Bool("summary", false,
		"Write aggregate counts to summary.json in the output directory")

	return cmd
}

// runBatchCmd executes the batch command.
func runBatchCmd(cmd *cobra.Command, args []string) error {
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
	workers, err := cmd.Flags().GetInt("workers")
	if err != nil {
		return err
	}
	writeSummary, err := cmd.Flags().GetBool("summary")
	if err != nil {
		return err
	}

	var engine detect.Engine
	if !opts.binary {
		if engine, err = detect.New(prof.Engine); err != nil {
			return err
		}
	}

	paths, err := collectImages(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no images found")
	}

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	logger.Info("starting batch",
		"images", len(paths),
		"workers", workers,
		"autoClassify", prof.AutoClassify,
	)

	items, srcs, err := detectAll(ctx, engine, prof.Settings(), paths, workers, opts.binary, logger)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return errors.New("no readable images")
	}

	results, err := fillable.ProcessBatch(ctx, prof.Pipeline(), items, workers)
	if err != nil {
		return err
	}

	for _, r := range results {
		if err := writeAssets(r.Name, srcs[r.Name], r.Result, opts); err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), r.Name, r.Result)
	}

	summary := fillable.Summarize(results)
	if writeSummary {
		path := filepath.Join(opts.dir, "summary.json")
		if err := saveFile(path, func(w io.Writer) error {
			return report.WriteSummary(w, summary)
		}); err != nil {
			return err
		}
	}
	if opts.markdown {
		path := filepath.Join(opts.dir, "batch_report.md")
		if err := saveFile(path, func(w io.Writer) error {
			return report.WriteBatchMarkdown(w, results, summary)
		}); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d pages: %d passed, %d warned, %d failed\n",
		summary.Pages, summary.Passed, summary.Warned, summary.Failed)

	if summary.Failed > 0 {
		logger.Warn("pages failed validation", "failed", summary.Failed, "total", summary.Pages)
	}
	return nil
}

// detectAll loads and edge-detects every image concurrently, skipping
// unreadable inputs with a warning. It returns the batch items in path
// order plus each item's source image for thumbnail generation.
func detectAll(ctx context.Context, eng detect.Engine, s detect.Settings, paths []string, workers int, binary bool, logger *slog.Logger) ([]fillable.BatchItem, map[string]image.Image, error) {
	type loaded struct {
		item fillable.BatchItem
		src  image.Image
		err  error
	}
	slots := make([]loaded, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := loadImage(path)
			if err != nil {
				slots[i].err = err
				return nil
			}
			var em *fillable.EdgeMap
			if binary {
				em, err = fillable.EdgeMapFromImage(img, true, fillable.EngineMeta{})
			} else {
				em, err = eng.ExtractLines(img, s)
			}
			if err != nil {
				slots[i].err = err
				return nil
			}
			slots[i] = loaded{item: fillable.BatchItem{Name: path, Edge: em}, src: img}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	items := make([]fillable.BatchItem, 0, len(slots))
	srcs := make(map[string]image.Image, len(slots))
	for i, slot := range slots {
		if slot.err != nil {
			logger.Warn("skipping image", "path", paths[i], "error", slot.err)
			continue
		}
		items = append(items, slot.item)
		srcs[slot.item.Name] = slot.src
	}
	return items, srcs, nil
}
