package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/linework/fillable"
)

func TestDefaultProfile(t *testing.T) {
	t.Parallel()

	p := DefaultProfile()

	if p.AgeGroup != string(fillable.AgeGroupFamily) {
		t.Errorf("AgeGroup = %q, want family", p.AgeGroup)
	}
	if p.AutoClassify {
		t.Error("expected AutoClassify to be off by default")
	}
	if p.CloseKernel != 2 {
		t.Errorf("CloseKernel = %d, want 2", p.CloseKernel)
	}
	if p.Thickness != 3 {
		t.Errorf("Thickness = %d, want 3", p.Thickness)
	}
	if p.MinSpeckleArea != 16 {
		t.Errorf("MinSpeckleArea = %d, want 16", p.MinSpeckleArea)
	}
	if p.SimplifyRegions {
		t.Error("expected SimplifyRegions to be off by default")
	}
	if p.MinRegionArea != 500 {
		t.Errorf("MinRegionArea = %d, want 500", p.MinRegionArea)
	}
	if p.Engine != "" {
		t.Errorf("Engine = %q, want auto-selection", p.Engine)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("default profile must validate, got %v", err)
	}
}

func TestProfileValidate(t *testing.T) {
	t.Parallel()

	t.Run("negative close kernel", func(t *testing.T) {
		t.Parallel()
		p := DefaultProfile()
		p.CloseKernel = -1
		if err := p.Validate(); !errors.Is(err, ErrInvalidCloseKernel) {
			t.Errorf("Validate() = %v, want ErrInvalidCloseKernel", err)
		}
	})

	t.Run("zero close kernel disables sealing", func(t *testing.T) {
		t.Parallel()
		p := DefaultProfile()
		p.CloseKernel = 0
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	t.Run("zero thickness", func(t *testing.T) {
		t.Parallel()
		p := DefaultProfile()
		p.Thickness = 0
		if err := p.Validate(); !errors.Is(err, ErrInvalidThickness) {
			t.Errorf("Validate() = %v, want ErrInvalidThickness", err)
		}
	})

	t.Run("negative speckle area", func(t *testing.T) {
		t.Parallel()
		p := DefaultProfile()
		p.MinSpeckleArea = -1
		if err := p.Validate(); !errors.Is(err, ErrInvalidSpeckleArea) {
			t.Errorf("Validate() = %v, want ErrInvalidSpeckleArea", err)
		}
	})

	t.Run("negative region area", func(t *testing.T) {
		t.Parallel()
		p := DefaultProfile()
		p.MinRegionArea = -1
		if err := p.Validate(); !errors.Is(err, ErrInvalidRegionArea) {
			t.Errorf("Validate() = %v, want ErrInvalidRegionArea", err)
		}
	})

	t.Run("negative blur radius", func(t *testing.T) {
		t.Parallel()
		p := DefaultProfile()
		p.BlurRadius = -1
		if err := p.Validate(); !errors.Is(err, ErrInvalidBlurRadius) {
			t.Errorf("Validate() = %v, want ErrInvalidBlurRadius", err)
		}
	})

	t.Run("threshold outside unit range", func(t *testing.T) {
		t.Parallel()
		for _, v := range []float64{-0.1, 1.1} {
			p := DefaultProfile()
			p.Threshold = v
			if err := p.Validate(); !errors.Is(err, ErrInvalidThreshold) {
				t.Errorf("Validate() with threshold %v = %v, want ErrInvalidThreshold", v, err)
			}
		}
	})

	t.Run("threshold bounds are inclusive", func(t *testing.T) {
		t.Parallel()
		for _, v := range []float64{0, 0.5, 1} {
			p := DefaultProfile()
			p.Threshold = v
			if err := p.Validate(); err != nil {
				t.Errorf("Validate() with threshold %v = %v, want nil", v, err)
			}
		}
	})

	t.Run("unknown age group", func(t *testing.T) {
		t.Parallel()
		p := DefaultProfile()
		p.AgeGroup = "toddler"
		if err := p.Validate(); !errors.Is(err, fillable.ErrUnknownAgeGroup) {
			t.Errorf("Validate() = %v, want ErrUnknownAgeGroup", err)
		}
	})

	t.Run("auto-classify skips the age group check", func(t *testing.T) {
		t.Parallel()
		p := DefaultProfile()
		p.AgeGroup = "toddler"
		p.AutoClassify = true
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})
}

func TestProfilePipeline(t *testing.T) {
	t.Parallel()

	p := Profile{
		AgeGroup:        "kids",
		AutoClassify:    true,
		CloseKernel:     4,
		Thickness:       5,
		MinSpeckleArea:  25,
		SimplifyRegions: true,
		MinRegionArea:   900,
		LabelWorkers:    8,
	}

	pl := p.Pipeline()
	if pl.Config.CloseKernel != 4 || pl.Config.Thickness != 5 {
		t.Errorf("Config = %+v, want closeKernel 4 thickness 5", pl.Config)
	}
	if pl.Config.MinSpeckleArea != 25 {
		t.Errorf("MinSpeckleArea = %d, want 25", pl.Config.MinSpeckleArea)
	}
	if !pl.Config.SimplifyRegions || pl.Config.MinRegionArea != 900 {
		t.Errorf("Config = %+v, want simplify with minRegionArea 900", pl.Config)
	}
	if pl.Target != fillable.AgeGroupKids {
		t.Errorf("Target = %v, want kids", pl.Target)
	}
	if !pl.AutoClassify {
		t.Error("expected AutoClassify to carry over")
	}
	if pl.LabelWorkers != 8 {
		t.Errorf("LabelWorkers = %d, want 8", pl.LabelWorkers)
	}
}

func TestProfileSettings(t *testing.T) {
	t.Parallel()

	p := Profile{BlurRadius: 3, Threshold: 0.4}
	s := p.Settings()
	if s.BlurRadius != 3 {
		t.Errorf("BlurRadius = %d, want 3", s.BlurRadius)
	}
	if s.Threshold != 0.4 {
		t.Errorf("Threshold = %v, want 0.4", s.Threshold)
	}
}

func TestFileProfile(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns the default profile", func(t *testing.T) {
		t.Parallel()

		f := &File{Profiles: map[string]Profile{"kids-print": {AgeGroup: "kids"}}}
		p, err := f.Profile("")
		if err != nil {
			t.Fatalf("Profile(\"\") error = %v", err)
		}
		if p.AgeGroup != string(fillable.AgeGroupFamily) {
			t.Errorf("AgeGroup = %q, want the default", p.AgeGroup)
		}
	})

	t.Run("returns the named profile", func(t *testing.T) {
		t.Parallel()

		f := &File{Profiles: map[string]Profile{"kids-print": {AgeGroup: "kids", Thickness: 5}}}
		p, err := f.Profile("kids-print")
		if err != nil {
			t.Fatalf("Profile(kids-print) error = %v", err)
		}
		if p.AgeGroup != "kids" || p.Thickness != 5 {
			t.Errorf("profile = %+v, want kids with thickness 5", p)
		}
	})

	t.Run("unknown name returns ErrProfileNotFound", func(t *testing.T) {
		t.Parallel()

		f := &File{Profiles: map[string]Profile{}}
		_, err := f.Profile("missing")
		if !errors.Is(err, ErrProfileNotFound) {
			t.Errorf("Profile(missing) = %v, want ErrProfileNotFound", err)
		}
	})

	t.Run("nil file still serves the default profile", func(t *testing.T) {
		t.Parallel()

		var f *File
		if _, err := f.Profile(""); err != nil {
			t.Errorf("Profile(\"\") on nil file error = %v", err)
		}
		if _, err := f.Profile("any"); !errors.Is(err, ErrProfileNotFound) {
			t.Errorf("Profile(any) on nil file = %v, want ErrProfileNotFound", err)
		}
	})
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for a missing file", func(t *testing.T) {
		t.Parallel()

		f, err := LoadFile("/nonexistent/path/.fillable.yml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("LoadFile() error = %v, want ErrConfigNotFound", err)
		}
		if f != nil {
			t.Error("expected nil file when not found")
		}
	})

	t.Run("partial profiles keep default values", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		content := `profiles:
  kids-print:
    ageGroup: kids
    thickness: 5
  detailed:
    autoClassify: true
    simplifyRegions: true
    minRegionArea: 900
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("write config: %v", err)
		}

		f, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}

		kids, err := f.Profile("kids-print")
		if err != nil {
			t.Fatalf("Profile(kids-print) error = %v", err)
		}
		if kids.AgeGroup != "kids" || kids.Thickness != 5 {
			t.Errorf("kids-print = %+v, want ageGroup kids thickness 5", kids)
		}
		if kids.CloseKernel != 2 || kids.MinSpeckleArea != 16 || kids.MinRegionArea != 500 {
			t.Errorf("kids-print = %+v, want unset fields at defaults", kids)
		}

		detailed, err := f.Profile("detailed")
		if err != nil {
			t.Fatalf("Profile(detailed) error = %v", err)
		}
		if !detailed.AutoClassify || !detailed.SimplifyRegions || detailed.MinRegionArea != 900 {
			t.Errorf("detailed = %+v, want autoClassify simplify minRegionArea 900", detailed)
		}
		if detailed.AgeGroup != string(fillable.AgeGroupFamily) {
			t.Errorf("detailed.AgeGroup = %q, want the default", detailed.AgeGroup)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("profiles: [}"), 0600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, err := LoadFile(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("initializes a nil profile map", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("profiles:\n"), 0600); err != nil {
			t.Fatalf("write config: %v", err)
		}

		f, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		if f.Profiles == nil {
			t.Error("expected Profiles map to be initialized")
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Run("returns explicit path if it exists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yml")
		if err := os.WriteFile(path, []byte("profiles: {}"), 0600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if got := FindConfigFile(path); got != path {
			t.Errorf("FindConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("returns empty for a missing explicit path", func(t *testing.T) {
		if got := FindConfigFile("/nonexistent/config.yml"); got != "" {
			t.Errorf("FindConfigFile() = %q, want empty", got)
		}
	})

	t.Run("empty path searches without panicking", func(_ *testing.T) {
		// May or may not find a file depending on the host; the search
		// itself must not fail.
		_ = FindConfigFile("")
	})
}
