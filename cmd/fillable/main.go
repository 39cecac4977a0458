// Package main provides the entry point for the fillable CLI.
//
// fillable turns photos and drawings into deterministic coloring-page
// assets: clean binary line art, a per-pixel region label map, region
// metadata, and an automated quality classification per age group.
//
// Usage:
//
//	fillable process <image>
//	fillable batch <dir>
//	fillable validate <metadata.json>
//
// See --help for all available options.
package main

// Register the built-in edge-detection engine.
import _ "github.com/linework/fillable/detect/sobel"

// main is the entry point for fillable.
func main() {
	Execute()
}
