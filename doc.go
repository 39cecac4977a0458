// Package fillable turns raw edge-detection output into deterministic,
// per-region-labeled coloring-page assets with an automated quality
// classification.
//
// # Overview
//
// The pipeline has three stages, consumed in dependency order:
//
//   - Post-processing: a raw EdgeMap becomes clean binary line art
//     (black lines on a white, fillable background). See [Process].
//   - Region extraction: the line art is decomposed into 4-connected
//     fillable regions, producing a LabelMap and per-region metadata.
//     See [Extract].
//   - Validation: region metadata is checked against age-group complexity
//     limits and annotated with an age-group recommendation. See [Validate]
//     and [AutoClassify].
//
// [Pipeline.Run] wires the stages for one image; [ProcessBatch] runs many
// images in parallel.
//
// # Quick Start
//
//	em, err := sobelEngine.ExtractLines(photo, detect.Settings{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p := fillable.NewPipeline(fillable.DefaultConfig(), fillable.AgeGroupKids)
//	res := p.Run(em)
//
//	fmt.Println(res.Metadata.TotalRegions, res.QA.Status)
//
// # Determinism
//
// Given bit-identical input pixels, region ids, centroids, bounding boxes,
// and the label encoding are identical on every run. Region ids are assigned
// in row-major discovery order starting at 1; id 0 is reserved for line and
// background pixels. The optional banded labeler ([ExtractParallel]) produces
// output identical to the sequential scan.
//
// # Label encoding
//
// A LabelMap stores one region id per pixel using one of two encodings,
// chosen after extraction and recorded in the page metadata:
//
//   - grayscale8: one byte per pixel, up to 255 regions
//   - rgb24: three bytes per pixel, id = R + G*256 + B*65536,
//     up to 16,777,215 regions
//
// Consumers must branch on the recorded encoding, never on buffer size.
//
// # Errors
//
// The three stages never fail: degenerate inputs produce valid empty
// results, a failed post-processing sub-step is skipped with the prior
// buffer passing through, and quality problems are returned as structured
// [QAIssue] values rather than errors. Constructors and collaborators that
// touch external data (image decoding, detector engines) return errors in
// the usual Go style.
//
// # Coordinate System
//
// Origin (0,0) at top-left, x increases right, y increases down. Buffers
// are row-major with one or three bytes per pixel.
package fillable

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
