// Package config loads and validates dataset generation configurations.
//
// A configuration is a YAML or TOML document with a single "voronoi" root
// table. [Load] parses the document into a raw map so [Validate] can report
// every problem with a readable message; [Source.Decode] then maps the same
// bytes onto the typed [Config].
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/params"
	"github.com/matzehuels/voronoigen/pkg/postprocess"
	"github.com/matzehuels/voronoigen/pkg/sampling"
)

// Format is the encoding of a configuration file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor returns the format implied by a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.Configuration("unsupported config extension %q (want .yaml, .yml or .toml)", filepath.Ext(path))
}

// Document is the root of a configuration file.
type Document struct {
	Voronoi Config `yaml:"voronoi" toml:"voronoi"`
}

// Config describes one dataset generation run.
type Config struct {
	Width           int                 `yaml:"width" toml:"width"`
	Height          int                 `yaml:"height" toml:"height"`
	OutputDir       string              `yaml:"output_dir" toml:"output_dir"`
	PointGeneration PointGeneration     `yaml:"point_generation" toml:"point_generation"`
	LabelInfo       params.Params       `yaml:"label_info" toml:"label_info"`
	ImageInfo       ImageInfo           `yaml:"image_info" toml:"image_info"`
	PostProcessors  []PostProcessor     `yaml:"post_processors" toml:"post_processors"`
	DatatypeInfo    map[string]Datatype `yaml:"datatype_info" toml:"datatype_info"`
	Split           *Split              `yaml:"split" toml:"split"`
}

// PointGeneration selects the seed-point sampler. List-valued parameters
// (points_num, min_distance) are cycled by diagram index.
type PointGeneration struct {
	Method string        `yaml:"method" toml:"method"`
	Params params.Params `yaml:"params" toml:"params"`
}

// ImageInfo selects the per-region gray sampler.
type ImageInfo struct {
	Method string        `yaml:"method" toml:"method"`
	Params params.Params `yaml:"params" toml:"params"`
}

// PostProcessor declares one post-processing stage.
type PostProcessor struct {
	Type    string        `yaml:"type" toml:"type"`
	Params  params.Params `yaml:"params" toml:"params"`
	ApplyTo string        `yaml:"apply_to" toml:"apply_to"`
}

// Datatype configures one dataset split such as "train" or "valid".
type Datatype struct {
	DiagramNum int   `yaml:"diagram_num" toml:"diagram_num"`
	Seed       int64 `yaml:"seed" toml:"seed"`
}

// Split is the tile size images and labels are cut into.
type Split struct {
	Width  int `yaml:"split_width" toml:"split_width"`
	Height int `yaml:"split_height" toml:"split_height"`
}

// Source is a parsed configuration file.
type Source struct {
	Path   string
	Format Format
	Raw    map[string]any

	data []byte
}

// Load reads and parses the configuration at path.
func Load(path string) (*Source, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "read config %s", path)
	}
	return Parse(data, format, path)
}

// Parse parses configuration bytes. The path is only used in messages.
func Parse(data []byte, format Format, path string) (*Source, error) {
	raw := map[string]any{}
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatTOML:
		err = toml.Unmarshal(data, &raw)
	default:
		return nil, errors.Configuration("unsupported config format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "parse %s config %s", format, path)
	}
	return &Source{Path: path, Format: format, Raw: raw, data: data}, nil
}

// Validate checks the raw document.
func (s *Source) Validate() *ValidationResult {
	return Validate(s.Raw)
}

// Decode maps the document onto the typed configuration.
func (s *Source) Decode() (*Config, error) {
	var doc Document
	var err error
	switch s.Format {
	case FormatYAML:
		err = yaml.Unmarshal(s.data, &doc)
	case FormatTOML:
		_, err = toml.Decode(string(s.data), &doc)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "decode config %s", s.Path)
	}
	return &doc.Voronoi, nil
}

// SplitNames returns the configured split names, sorted.
func (c *Config) SplitNames() []string {
	names := make([]string, 0, len(c.DatatypeInfo))
	for name := range c.DatatypeInfo {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Descriptors converts the post-processor declarations into pipeline stages.
func (c *Config) Descriptors() []postprocess.Descriptor {
	descs := make([]postprocess.Descriptor, len(c.PostProcessors))
	for i, pp := range c.PostProcessors {
		descs[i] = postprocess.Descriptor{
			Type:   postprocess.Kind(pp.Type),
			Params: pp.Params,
			Scope:  postprocess.Scope(pp.ApplyTo),
		}
	}
	return descs
}

// FinalSize returns the canvas size after post-processing: the last crop
// applied to both canvases, or the configured size when there is none.
func (c *Config) FinalSize() (width, height int) {
	width, height = c.Width, c.Height
	for _, pp := range c.PostProcessors {
		if pp.Type != string(postprocess.KindCrop) || pp.ApplyTo != string(postprocess.ScopeBoth) {
			continue
		}
		v := string(postprocess.KindCrop)
		if w, err := pp.Params.IntOr(v, "crop_width", 2560); err == nil {
			width = w
		}
		if h, err := pp.Params.IntOr(v, "crop_height", 1536); err == nil {
			height = h
		}
	}
	return width, height
}

// DynamicParams returns the per-diagram sampler arguments for diagram i.
// The configured lists are cycled, so diagram i uses element i mod len.
func (pg PointGeneration) DynamicParams(i int) (params.Params, error) {
	method := sampling.PointMethod(pg.Method)
	v := string(method)
	switch method {
	case sampling.PointRandom:
		counts, err := pg.Params.IntList(v, "points_num")
		if err != nil {
			return nil, err
		}
		if len(counts) == 0 {
			return nil, errors.Configuration("points_num must not be empty")
		}
		return params.Params{"points_num": counts[i%len(counts)]}, nil
	case sampling.PointPoissonDisk:
		dists, err := pg.Params.FloatList(v, "min_distance")
		if err != nil {
			return nil, err
		}
		if len(dists) == 0 {
			return nil, errors.Configuration("min_distance must not be empty")
		}
		attempts, err := pg.Params.IntOr(v, "max_attempts", sampling.DefaultMaxAttempts)
		if err != nil {
			return nil, err
		}
		return params.Params{"min_distance": dists[i%len(dists)], "max_attempts": attempts}, nil
	}
	return nil, errors.UnknownVariant("point generation method", pg.Method)
}
