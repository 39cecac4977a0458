package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/linework/fillable"
)

// loadImage decodes an image from path. PNG, JPEG, and GIF are supported.
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// loadMetadata reads a page metadata sidecar.
func loadMetadata(path string) (*fillable.PageMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var meta fillable.PageMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &meta, nil
}

// saveFile creates path (and its parent directories) and streams content
// into it through write.
func saveFile(path string, write func(w io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// savePNG writes img to path as PNG.
func savePNG(path string, img image.Image) error {
	return saveFile(path, func(w io.Writer) error { return png.Encode(w, img) })
}

// imageExts are the input extensions batch directories are scanned for.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// collectImages expands the argument list: directories contribute every
// contained image, files pass through. The result is sorted so batch runs
// are reproducible.
func collectImages(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
				paths = append(paths, filepath.Join(arg, e.Name()))
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// assetPaths is the output file set derived for one input image.
type assetPaths struct {
	lineArt  string
	labels   string
	metadata string
	qa       string
	preview  string
	thumb    string
	report   string
}

// assetPathsFor derives output paths in outDir from the input file's stem.
func assetPathsFor(outDir, input string) assetPaths {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	j := func(suffix string) string { return filepath.Join(outDir, stem+suffix) }
	return assetPaths{
		lineArt:  j("_lineart.png"),
		labels:   j("_labels.png"),
		metadata: j("_metadata.json"),
		qa:       j("_qa.json"),
		preview:  j("_preview.png"),
		thumb:    j("_thumb.png"),
		report:   j("_report.md"),
	}
}
