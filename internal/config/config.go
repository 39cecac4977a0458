// Package config loads named processing profiles from YAML, so content
// teams can keep per-audience presets next to their asset folders instead
// of repeating flags.
package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/linework/fillable"
	"github.com/linework/fillable/detect"
)

// Profile validation errors.
var (
	// ErrProfileNotFound is returned when a named profile does not exist
	// in the loaded file.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInvalidCloseKernel is returned when the close kernel radius is
	// negative. Use 0 to disable gap sealing.
	ErrInvalidCloseKernel = errors.New("invalid closeKernel: must be non-negative")

	// ErrInvalidThickness is returned when the target line thickness is
	// below one pixel.
	ErrInvalidThickness = errors.New("invalid thickness: must be at least 1")

	// ErrInvalidSpeckleArea is returned when the speckle area is negative.
	// Use 0 to disable speckle removal.
	ErrInvalidSpeckleArea = errors.New("invalid minSpeckleArea: must be non-negative")

	// ErrInvalidRegionArea is returned when the simplify floor is negative.
	ErrInvalidRegionArea = errors.New("invalid minRegionArea: must be non-negative")

	// ErrInvalidBlurRadius is returned when the detector blur radius is
	// negative.
	ErrInvalidBlurRadius = errors.New("invalid blurRadius: must be non-negative")

	// ErrInvalidThreshold is returned when the detector threshold override
	// falls outside [0, 1]. Use 0 to keep the detector's suggestion.
	ErrInvalidThreshold = errors.New("invalid threshold: must be in [0, 1]")
)

// Profile is one named processing preset. Fields omitted in the YAML keep
// the default profile's values, so a profile only lists what it changes.
type Profile struct {
	// AgeGroup is the validation target. Ignored when AutoClassify is set.
	AgeGroup string `yaml:"ageGroup"`

	// AutoClassify derives the age group from each page instead of
	// validating against AgeGroup.
	AutoClassify bool `yaml:"autoClassify"`

	// Post-processing knobs, matching fillable.PostProcessConfig.
	CloseKernel     int  `yaml:"closeKernel"`
	Thickness       int  `yaml:"thickness"`
	MinSpeckleArea  int  `yaml:"minSpeckleArea"`
	SimplifyRegions bool `yaml:"simplifyRegions"`
	MinRegionArea   int  `yaml:"minRegionArea"`

	// Engine names the edge detector; empty selects the best available.
	Engine string `yaml:"engine"`

	// BlurRadius and Threshold tune the detector run.
	BlurRadius int     `yaml:"blurRadius"`
	Threshold  float64 `yaml:"threshold"`

	// LabelWorkers spreads region labeling over goroutines when above one.
	LabelWorkers int `yaml:"labelWorkers"`
}

// DefaultProfile returns the preset used when no profile is named: the
// production post-processing defaults validated against the family group.
func DefaultProfile() Profile {
	d := fillable.DefaultConfig()
	return Profile{
		AgeGroup:       string(fillable.AgeGroupFamily),
		CloseKernel:    d.CloseKernel,
		Thickness:      d.Thickness,
		MinSpeckleArea: d.MinSpeckleArea,
		MinRegionArea:  d.MinRegionArea,
	}
}

// UnmarshalYAML decodes a profile over the default profile, so unset fields
// keep their default values.
func (p *Profile) UnmarshalYAML(value *yaml.Node) error {
	type raw Profile
	r := raw(DefaultProfile())
	if err := value.Decode(&r); err != nil {
		return err
	}
	*p = Profile(r)
	return nil
}

// Validate checks the profile for values the pipeline cannot run with.
func (p Profile) Validate() error {
	if p.CloseKernel < 0 {
		return ErrInvalidCloseKernel
	}
	if p.Thickness < 1 {
		return ErrInvalidThickness
	}
	if p.MinSpeckleArea < 0 {
		return ErrInvalidSpeckleArea
	}
	if p.MinRegionArea < 0 {
		return ErrInvalidRegionArea
	}
	if p.BlurRadius < 0 {
		return ErrInvalidBlurRadius
	}
	if p.Threshold < 0 || p.Threshold > 1 {
		return ErrInvalidThreshold
	}
	if !p.AutoClassify {
		if _, err := fillable.ParseAgeGroup(p.AgeGroup); err != nil {
			return err
		}
	}
	return nil
}

// Pipeline converts the profile to a configured pipeline.
func (p Profile) Pipeline() *fillable.Pipeline {
	return &fillable.Pipeline{
		Config: fillable.PostProcessConfig{
			CloseKernel:     p.CloseKernel,
			Thickness:       p.Thickness,
			MinSpeckleArea:  p.MinSpeckleArea,
			SimplifyRegions: p.SimplifyRegions,
			MinRegionArea:   p.MinRegionArea,
		},
		Target:       fillable.AgeGroup(p.AgeGroup),
		AutoClassify: p.AutoClassify,
		LabelWorkers: p.LabelWorkers,
	}
}

// Settings returns the detector settings the profile asks for.
func (p Profile) Settings() detect.Settings {
	return detect.Settings{
		BlurRadius: p.BlurRadius,
		Threshold:  p.Threshold,
	}
}

// File is the parsed profile file.
type File struct {
	// Profiles maps preset names to their settings.
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile returns the named profile, or the default profile for an empty
// name.
func (f *File) Profile(name string) (Profile, error) {
	if name == "" {
		return DefaultProfile(), nil
	}
	if f != nil {
		if p, ok := f.Profiles[name]; ok {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("%w: %q", ErrProfileNotFound, name)
}
