package main

import (
	"fmt"
	"image"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fogleman/gg"
	"github.com/spf13/cobra"

	"github.com/linework/fillable"
)

// Demo pages are drawn on a fixed design grid and scaled to the requested
// size at render time.
const (
	designSize    = 1024.0
	demoLineWidth = 8.0
	demoThinWidth = 4.0
)

// motifs maps demo page names to their drawing routines. Routines draw in
// design-grid coordinates; the context is pre-scaled.
var motifs = map[string]func(dc *gg.Context, s float64){
	"cat":      drawCat,
	"dog":      drawDog,
	"elephant": drawElephant,
	"fish":     drawFish,
	"car":      drawCar,
	"house":    drawHouse,
	"flower":   drawFlower,
	"star":     drawStar,
}

// motifNames returns the motif names in stable order.
func motifNames() []string {
	names := make([]string, 0, len(motifs))
	for name := range motifs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewDemoCmd creates the demo command.
func NewDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Draw sample pages and run them through the pipeline",
		Long: fmt.Sprintf(`Demo draws a set of synthetic coloring pages with known-good line work and
runs each through the full pipeline, producing the same asset set as the
process command. Useful for trying the tool without hunting for inputs and
as a smoke test of the whole asset chain.

Available motifs: %s.

Examples:
  # Draw and process every motif
  fillable demo

  # Two specific pages, validated for kids, into ./samples
  fillable demo --motif cat --motif star -g kids -o samples`,
			strings.Join(motifNames(), ", ")),
		Args: cobra.NoArgs,
		RunE: runDemoCmd,
	}

	cmd.Flags().StringP("out", "o", "demo",
		"Output directory for generated pages and assets")
	cmd.Flags().StringP("age-group", "g", string(fillable.AgeGroupFamily),
		"Target age group: kids, family, or adult")
	cmd.Flags().Bool("auto", false,
		"Pick the age group automatically per page")
	cmd.Flags().StringSlice("motif", nil,
		"Motifs to draw (repeatable; default: all)")
	cmd.Flags().Int("size", int(designSize),
		"Page size in pixels")
	cmd.Flags().Bool("preview", true,
		"Write a colorized region preview per page")
	cmd.Flags().Bool("thumbnail", true,
		"Write a square thumbnail per page")
	cmd.Flags().BoolP("markdown", "m", true,
		"Write a markdown report per page")

	return cmd
}

// runDemoCmd executes the demo command.
func runDemoCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(getVerboseFlag(cmd))
	flags := cmd.Flags()

	dir, err := flags.GetString("out")
	if err != nil {
		return err
	}
	groupName, err := flags.GetString("age-group")
	if err != nil {
		return err
	}
	auto, err := flags.GetBool("auto")
	if err != nil {
		return err
	}
	names, err := flags.GetStringSlice("motif")
	if err != nil {
		return err
	}
	size, err := flags.GetInt("size")
	if err != nil {
		return err
	}
	if size < 64 {
		return fmt.Errorf("size %d too small: want at least 64", size)
	}

	opts := outputOptions{dir: dir, binary: true}
	if opts.preview, err = flags.GetBool("preview"); err != nil {
		return err
	}
	if opts.thumbnail, err = flags.GetBool("thumbnail"); err != nil {
		return err
	}
	if opts.markdown, err = flags.GetBool("markdown"); err != nil {
		return err
	}

	if len(names) == 0 {
		names = motifNames()
	}
	for _, name := range names {
		if _, ok := motifs[name]; !ok {
			return fmt.Errorf("unknown motif %q (have %s)", name, strings.Join(motifNames(), ", "))
		}
	}

	var target fillable.AgeGroup
	if !auto {
		if target, err = fillable.ParseAgeGroup(groupName); err != nil {
			return err
		}
	}
	pipe := &fillable.Pipeline{
		Config:       fillable.DefaultConfig(),
		Target:       target,
		AutoClassify: auto,
	}

	for _, name := range names {
		img := drawMotif(name, size)
		if err := savePNG(filepath.Join(dir, name+".png"), img); err != nil {
			return err
		}

		// The drawn pages are finished line art, so edge detection is
		// skipped; the pipeline's threshold pass cleans up the stroke
		// anti-aliasing.
		em, err := fillable.EdgeMapFromImage(img, true, fillable.EngineMeta{})
		if err != nil {
			return err
		}
		res := pipe.Run(em)
		if err := writeAssets(name, img, res, opts); err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), name, res)
	}

	logger.Info("demo pages written", "dir", dir, "pages", len(names))
	return nil
}

// drawMotif renders one motif at the requested page size.
func drawMotif(name string, size int) image.Image {
	dc := gg.NewContext(size, size)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Geometry follows the context transform; stroke width does not.
	s := float64(size) / designSize
	dc.Scale(s, s)
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(demoLineWidth * s)

	motifs[name](dc, s)
	return dc.Image()
}

// strokePolygon strokes a closed polygon through the given points.
func strokePolygon(dc *gg.Context, pts ...gg.Point) {
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
	dc.Stroke()
}

// strokeEllipse strokes an ellipse centered at (x, y).
func strokeEllipse(dc *gg.Context, x, y, rx, ry float64) {
	dc.DrawEllipse(x, y, rx, ry)
	dc.Stroke()
}

// strokeArc strokes a partial ellipse between two angles, in degrees.
func strokeArc(dc *gg.Context, x, y, rx, ry, deg1, deg2 float64) {
	dc.DrawEllipticalArc(x, y, rx, ry, gg.Radians(deg1), gg.Radians(deg2))
	dc.Stroke()
}

func strokeLine(dc *gg.Context, x1, y1, x2, y2 float64) {
	dc.DrawLine(x1, y1, x2, y2)
	dc.Stroke()
}

func strokeRect(dc *gg.Context, x, y, w, h float64) {
	dc.DrawRectangle(x, y, w, h)
	dc.Stroke()
}

func drawCat(dc *gg.Context, s float64) {
	dc.DrawCircle(512, 512, 312) // head
	dc.Stroke()

	strokePolygon(dc, gg.Point{X: 250, Y: 250}, gg.Point{X: 180, Y: 80}, gg.Point{X: 380, Y: 200})
	strokePolygon(dc, gg.Point{X: 774, Y: 250}, gg.Point{X: 844, Y: 80}, gg.Point{X: 644, Y: 200})

	strokeEllipse(dc, 370, 440, 50, 60)
	strokeEllipse(dc, 654, 440, 50, 60)

	strokePolygon(dc, gg.Point{X: 512, Y: 520}, gg.Point{X: 462, Y: 600}, gg.Point{X: 562, Y: 600})

	strokeArc(dc, 456, 640, 56, 60, 0, 180)
	strokeArc(dc, 568, 640, 56, 60, 0, 180)

	// Whiskers are thinner than the outlines.
	dc.SetLineWidth(demoThinWidth * s)
	strokeLine(dc, 320, 600, 150, 550)
	strokeLine(dc, 320, 640, 150, 640)
	strokeLine(dc, 320, 680, 150, 730)
	strokeLine(dc, 704, 600, 874, 550)
	strokeLine(dc, 704, 640, 874, 640)
	strokeLine(dc, 704, 680, 874, 730)
	dc.SetLineWidth(demoLineWidth * s)
}

func drawDog(dc *gg.Context, _ float64) {
	dc.DrawCircle(512, 512, 312) // head
	dc.Stroke()

	strokeEllipse(dc, 200, 350, 100, 150) // floppy ears
	strokeEllipse(dc, 824, 350, 100, 150)

	strokeEllipse(dc, 390, 430, 50, 50)
	strokeEllipse(dc, 634, 430, 50, 50)

	strokeEllipse(dc, 512, 595, 82, 65) // nose

	strokeLine(dc, 512, 660, 512, 720)
	strokeArc(dc, 456, 730, 56, 50, 0, 180)
	strokeArc(dc, 568, 730, 56, 50, 0, 180)

	strokeEllipse(dc, 512, 770, 42, 50) // tongue
}

func drawElephant(dc *gg.Context, _ float64) {
	// Body with the head overlapping it.
	strokeEllipse(dc, 600, 600, 300, 200)
	dc.DrawCircle(300, 500, 200)
	dc.Stroke()

	strokeArc(dc, 150, 675, 100, 225, 90, 270) // trunk
	strokeLine(dc, 150, 450, 150, 550)

	// Ear, then the eye inside the head outline.
	strokeEllipse(dc, 150, 425, 100, 125)
	strokeEllipse(dc, 310, 450, 30, 30)

	strokeRect(dc, 400, 700, 80, 200)
	strokeRect(dc, 520, 700, 80, 200)
	strokeRect(dc, 680, 700, 80, 200)
	strokeRect(dc, 800, 700, 80, 200)

	strokeArc(dc, 915, 625, 65, 75, 180, 360) // tail
}

func drawFish(dc *gg.Context, s float64) {
	strokeEllipse(dc, 475, 500, 275, 200) // body

	strokePolygon(dc, gg.Point{X: 700, Y: 500}, gg.Point{X: 900, Y: 300}, gg.Point{X: 900, Y: 700})

	strokeEllipse(dc, 340, 460, 40, 40)
	strokeEllipse(dc, 340, 460, 20, 20)

	strokeArc(dc, 240, 500, 40, 40, -90, 90) // mouth

	strokePolygon(dc, gg.Point{X: 450, Y: 300}, gg.Point{X: 550, Y: 150}, gg.Point{X: 550, Y: 300})
	strokePolygon(dc, gg.Point{X: 450, Y: 700}, gg.Point{X: 550, Y: 850}, gg.Point{X: 550, Y: 700})

	// Scale pattern over the body.
	dc.SetLineWidth(demoThinWidth * s)
	for y := 380.0; y < 620; y += 80 {
		for x := 350.0; x < 650; x += 80 {
			strokeArc(dc, x+30, y+30, 30, 30, 0, 180)
		}
	}
	dc.SetLineWidth(demoLineWidth * s)
}

func drawCar(dc *gg.Context, _ float64) {
	strokeRect(dc, 150, 450, 724, 250) // body

	strokePolygon(dc, gg.Point{X: 300, Y: 450}, gg.Point{X: 350, Y: 300},
		gg.Point{X: 674, Y: 300}, gg.Point{X: 724, Y: 450}) // cabin

	strokePolygon(dc, gg.Point{X: 360, Y: 440}, gg.Point{X: 400, Y: 320},
		gg.Point{X: 500, Y: 320}, gg.Point{X: 500, Y: 440})
	strokePolygon(dc, gg.Point{X: 520, Y: 440}, gg.Point{X: 520, Y: 320},
		gg.Point{X: 620, Y: 320}, gg.Point{X: 660, Y: 440})

	for _, cx := range []float64{300, 724} {
		dc.DrawCircle(cx, 700, 80)
		dc.Stroke()
		dc.DrawCircle(cx, 700, 40)
		dc.Stroke()
	}

	strokeEllipse(dc, 190, 550, 30, 30) // headlights
	strokeEllipse(dc, 834, 550, 30, 30)

	strokeRect(dc, 550, 520, 70, 20) // door handle
}

func drawHouse(dc *gg.Context, _ float64) {
	strokePolygon(dc, gg.Point{X: 150, Y: 400}, gg.Point{X: 512, Y: 100}, gg.Point{X: 874, Y: 400}) // roof

	// Body, an extra line sealing the roof junction, the door column
	// walls, and the divider above the door.
	strokeRect(dc, 200, 400, 624, 450)
	strokeLine(dc, 200, 400, 824, 400)
	strokeLine(dc, 430, 400, 430, 850)
	strokeLine(dc, 594, 400, 594, 850)
	strokeLine(dc, 430, 600, 594, 600)

	strokeEllipse(dc, 560, 720, 15, 15) // knob

	for _, wx := range []float64{260, 644} {
		strokeRect(dc, wx, 490, 120, 90)
		strokeLine(dc, wx+60, 490, wx+60, 580)
		strokeLine(dc, wx, 535, wx+120, 535)
	}

	strokeRect(dc, 680, 160, 80, 130) // chimney
}

func drawFlower(dc *gg.Context, _ float64) {
	strokeLine(dc, 512, 500, 512, 900) // stem

	strokeEllipse(dc, 600, 700, 80, 50) // leaves
	strokeEllipse(dc, 424, 750, 80, 50)

	dc.DrawCircle(512, 450, 100) // center
	dc.Stroke()

	for i := 0; i < 6; i++ {
		angle := float64(i) * 60 * math.Pi / 180
		cx := 512 + 200*math.Cos(angle)
		cy := 450 + 200*math.Sin(angle)
		dc.DrawCircle(cx, cy, 80)
		dc.Stroke()
	}
}

func drawStar(dc *gg.Context, _ float64) {
	for i := 0; i < 10; i++ {
		angle := (float64(i)*36 - 90) * math.Pi / 180
		r := 400.0
		if i%2 == 1 {
			r = 180
		}
		x := 512 + r*math.Cos(angle)
		y := 512 + r*math.Sin(angle)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
	dc.Stroke()

	strokeEllipse(dc, 450, 430, 30, 30)
	strokeEllipse(dc, 574, 430, 30, 30)
	strokeArc(dc, 512, 530, 82, 50, 0, 180)
}
