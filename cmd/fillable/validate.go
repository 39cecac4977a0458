package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linework/fillable"
	"github.com/linework/fillable/internal/report"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [metadata.json...]",
		Short: "Re-validate existing page metadata",
		Long: `Validate re-runs quality classification over metadata sidecars written by
the process and batch commands, without touching any pixels. Useful for
re-checking a page library against a different age group.

The command exits non-zero when any page fails hard validation.

Examples:
  # Check pages against the kids limits
  fillable validate -g kids out/drawing_metadata.json

  # Let each page pick its own group, print results as JSON
  fillable validate --auto --json out/drawing_metadata.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runValidateCmd,
	}

	cmd.Flags().StringP("age-group", "g", string(fillable.AgeGroupFamily),
		"Target age group: kids, family, or adult")
	cmd.Flags().Bool("auto", false,
		"Pick the age group automatically per page")
	cmd.Flags().BoolP("json", "j", false,
		"Print QA results as JSON")

	return cmd
}

// runValidateCmd executes the validate command.
func runValidateCmd(cmd *cobra.Command, args []string) error {
	setupLogger(getVerboseFlag(cmd))
	flags := cmd.Flags()

	groupName, err := flags.GetString("age-group")
	if err != nil {
		return err
	}
	auto, err := flags.GetBool("auto")
	if err != nil {
		return err
	}
	asJSON, err := flags.GetBool("json")
	if err != nil {
		return err
	}

	var target fillable.AgeGroup
	if !auto {
		if target, err = fillable.ParseAgeGroup(groupName); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		meta, err := loadMetadata(path)
		if err != nil {
			return err
		}

		group := target
		var qa fillable.QAResult
		if auto {
			group, qa = fillable.AutoClassify(meta)
		} else {
			qa = fillable.Validate(meta, target)
		}
		if qa.Status == fillable.StatusFail {
			failed++
		}

		if asJSON {
			if err := report.WriteQA(out, qa); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(out, "%s: %s for %s (%d regions, %.1f%% tiny, recommended %s)\n",
			path, qa.Status, group, qa.RegionCount, qa.TinyPercentage*100, qa.RecommendedAgeGroup)
		for _, issue := range qa.Issues {
			fmt.Fprintf(out, "  [%s] %s: %s\n", issue.Severity, issue.Code, issue.Message)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d pages failed validation", failed, len(args))
	}
	return nil
}
