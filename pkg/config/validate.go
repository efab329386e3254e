package config

import (
	"fmt"
	"slices"

	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/params"
	"github.com/matzehuels/voronoigen/pkg/postprocess"
	"github.com/matzehuels/voronoigen/pkg/sampling"
)

// ValidationResult collects every problem found in a document. Errors make
// the configuration unusable; warnings describe surprising but legal setups.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

type validator struct {
	errs  []string
	warns []string
}

func (v *validator) errorf(format string, args ...any) {
	v.errs = append(v.errs, fmt.Sprintf(format, args...))
}

func (v *validator) warnf(format string, args ...any) {
	v.warns = append(v.warns, fmt.Sprintf(format, args...))
}

// Validate checks a raw configuration document and reports all errors and
// warnings instead of stopping at the first one.
func Validate(raw map[string]any) *ValidationResult {
	v := &validator{}
	root, ok := params.AsMap(raw["voronoi"])
	if !ok {
		v.errorf("'voronoi' section is required")
	} else {
		v.basic(root)
		v.pointGeneration(root)
		v.imageInfo(root)
		v.labelInfo(root)
		v.postProcessors(root)
		v.datatypeInfo(root)
		v.split(root)
	}
	return &ValidationResult{Valid: len(v.errs) == 0, Errors: v.errs, Warnings: v.warns}
}

func positiveInt(x any) bool {
	n, _ := params.AsInt(x)
	return params.IsStrictInt(x) && n > 0
}

func nonNegativeInt(x any) bool {
	n, _ := params.AsInt(x)
	return params.IsStrictInt(x) && n >= 0
}

func positiveNumber(x any) bool {
	f, ok := params.AsFloat(x)
	return ok && f > 0
}

func byteValue(x any) bool {
	n, _ := params.AsInt(x)
	return params.IsStrictInt(x) && n >= 0 && n <= 255
}

func (v *validator) basic(cfg map[string]any) {
	for _, key := range []string{"width", "height"} {
		val, ok := cfg[key]
		switch {
		case !ok:
			v.errorf("'%s' is required", key)
		case !positiveInt(val):
			v.errorf("'%s' must be a positive integer", key)
		}
	}

	dir, ok := cfg["output_dir"]
	if !ok {
		v.errorf("'output_dir' is required")
		return
	}
	s, ok := dir.(string)
	if !ok {
		v.errorf("'output_dir' must be a string")
		return
	}
	if err := errors.ValidateOutputDir(s); err != nil {
		v.errorf("'output_dir': %s", errors.UserMessage(err))
	}
}

func (v *validator) pointGeneration(cfg map[string]any) {
	section, ok := params.AsMap(cfg["point_generation"])
	if !ok {
		v.errorf("'point_generation' section is required")
		return
	}

	method, hasMethod := section["method"]
	if !hasMethod {
		v.errorf("'point_generation.method' is required")
	} else if m, _ := method.(string); !slices.Contains(sampling.PointMethods(), sampling.PointMethod(m)) {
		v.errorf("'point_generation.method' must be 'random' or 'poisson_disk'")
	}

	p, ok := params.AsMap(section["params"])
	if !ok {
		v.errorf("'point_generation.params' is required")
		return
	}
	switch m, _ := method.(string); sampling.PointMethod(m) {
	case sampling.PointRandom:
		v.positiveList(p, "points_num", "random", positiveInt, "a positive integer")
	case sampling.PointPoissonDisk:
		v.positiveList(p, "min_distance", "poisson_disk", positiveNumber, "a positive number")
		if n, ok := p["max_attempts"]; ok && !positiveInt(n) {
			v.errorf("'max_attempts' must be a positive integer")
		}
	}
}

func (v *validator) positiveList(p map[string]any, key, method string, check func(any) bool, what string) {
	val, ok := p[key]
	if !ok {
		v.errorf("'%s' is required for '%s' method", key, method)
		return
	}
	items, ok := params.AsList(val)
	if !ok {
		v.errorf("'%s' must be a list", key)
		return
	}
	if len(items) == 0 {
		v.errorf("'%s' must not be empty", key)
		return
	}
	for _, item := range items {
		if !check(item) {
			v.errorf("Each element of '%s' must be %s", key, what)
			return
		}
	}
}

func (v *validator) imageInfo(cfg map[string]any) {
	section, ok := params.AsMap(cfg["image_info"])
	if !ok {
		v.errorf("'image_info' section is required")
		return
	}

	method, ok := section["method"]
	if !ok {
		v.errorf("'image_info.method' is required")
		return
	}
	m, _ := method.(string)
	if !slices.Contains(sampling.GrayMethods(), sampling.GrayMethod(m)) {
		v.errorf("'image_info.method' must be 'uniform' or 'gaussian'")
		return
	}
	if sampling.GrayMethod(m) != sampling.GrayGaussian {
		return
	}

	p, ok := params.AsMap(section["params"])
	if !ok {
		v.errorf("'image_info.params' is required for 'gaussian' method")
		return
	}
	if mean, ok := p["mean"]; !ok {
		v.errorf("'mean' is required for 'gaussian' method")
	} else if f, isNum := params.AsFloat(mean); !isNum || f < 0 || f > 255 {
		v.errorf("'mean' must be a number between 0-255")
	}
	if std, ok := p["std"]; !ok {
		v.errorf("'std' is required for 'gaussian' method")
	} else if !positiveNumber(std) {
		v.errorf("'std' must be a positive number")
	}
}

func (v *validator) labelInfo(cfg map[string]any) {
	val, ok := cfg["label_info"]
	if !ok {
		return
	}
	p, ok := params.AsMap(val)
	if !ok {
		v.errorf("'label_info' must be a dictionary")
		return
	}
	if t, ok := p["thickness"]; ok && !positiveInt(t) {
		v.errorf("'label_info.thickness' must be a positive integer")
	}
	if c, ok := p["color"]; ok {
		if items, isList := params.AsList(c); isList {
			if len(items) != 3 || !allOf(items, byteValue) {
				v.errorf("'label_info.color' must be an integer between 0-255 or a 3-element list of them")
			}
		} else if !byteValue(c) {
			v.errorf("'label_info.color' must be an integer between 0-255 or a 3-element list of them")
		}
	}
}

func allOf(items []any, check func(any) bool) bool {
	for _, item := range items {
		if !check(item) {
			return false
		}
	}
	return true
}

func (v *validator) postProcessors(cfg map[string]any) {
	val, ok := cfg["post_processors"]
	if !ok {
		v.warnf("'post_processors' section is missing (no post-processing will be applied)")
		return
	}
	list, ok := params.AsList(val)
	if !ok {
		v.errorf("'post_processors' must be a list")
		return
	}

	kinds := postprocess.Kinds()
	for i, item := range list {
		proc, ok := params.AsMap(item)
		if !ok {
			v.errorf("post_processors[%d] must be a dictionary", i)
			continue
		}

		kind, hasKind := proc["type"]
		k, _ := kind.(string)
		if !hasKind {
			v.errorf("post_processors[%d].type is required", i)
		} else if !slices.Contains(kinds, postprocess.Kind(k)) {
			v.errorf("post_processors[%d].type must be one of %v", i, kinds)
		}

		scope, hasScope := proc["apply_to"]
		s, _ := scope.(string)
		if !hasScope {
			v.errorf("post_processors[%d].apply_to is required", i)
		} else if !slices.Contains(postprocess.Scopes, postprocess.Scope(s)) {
			v.errorf("post_processors[%d].apply_to must be one of %v", i, postprocess.Scopes)
		} else if postprocess.Kind(k) == postprocess.KindCrop && postprocess.Scope(s) != postprocess.ScopeBoth {
			v.errorf("post_processors[%d]: crop must apply_to 'both' so image and label keep the same size", i)
		}

		p, ok := params.AsMap(proc["params"])
		if !ok {
			v.errorf("post_processors[%d].params is required", i)
			continue
		}
		v.processorParams(postprocess.Kind(k), p, i)
	}
}

func (v *validator) processorParams(kind postprocess.Kind, p map[string]any, i int) {
	prefix := fmt.Sprintf("post_processors[%d].params", i)
	require := func(key string, check func(any) bool, what string) {
		val, ok := p[key]
		switch {
		case !ok:
			v.errorf("%s.%s is required", prefix, key)
		case !check(val):
			v.errorf("%s.%s must be %s", prefix, key, what)
		}
	}

	switch kind {
	case postprocess.KindCrop:
		require("crop_width", positiveInt, "a positive integer")
		require("crop_height", positiveInt, "a positive integer")

	case postprocess.KindEllipticalMask:
		for _, key := range []string{"min_num", "max_num", "min_size", "max_size", "color"} {
			if _, ok := p[key]; !ok {
				v.errorf("%s.%s is required", prefix, key)
			}
		}
		v.orderedPair(p, prefix, "min_num", "max_num", nonNegativeInt, "a non-negative integer")
		v.orderedPair(p, prefix, "min_size", "max_size", positiveInt, "a positive integer")
		if c, ok := p["color"]; ok {
			items, isList := params.AsList(c)
			switch {
			case !isList || len(items) != 3:
				v.errorf("%s.color must be a 3-element list", prefix)
			case !allOf(items, byteValue):
				v.errorf("Each element of %s.color must be an integer between 0-255", prefix)
			}
		}

	case postprocess.KindGaussianNoise:
		require("mean", func(x any) bool { _, ok := params.AsFloat(x); return ok }, "a number")
		require("std", positiveNumber, "a positive number")

	case postprocess.KindPerlinNoise:
		if res, ok := p["res"]; !ok {
			v.errorf("%s.res is required", prefix)
		} else if items, isList := params.AsList(res); !isList || len(items) != 2 {
			v.errorf("%s.res must be a 2-element list", prefix)
		} else if !allOf(items, positiveInt) {
			v.errorf("Each element of %s.res must be a positive integer", prefix)
		}
		require("noise_range", positiveNumber, "a positive number")
	}
}

func (v *validator) orderedPair(p map[string]any, prefix, lo, hi string, check func(any) bool, what string) {
	a, okA := p[lo]
	b, okB := p[hi]
	if !okA || !okB {
		return
	}
	validA, validB := check(a), check(b)
	if !validA {
		v.errorf("%s.%s must be %s", prefix, lo, what)
	}
	if !validB {
		v.errorf("%s.%s must be %s", prefix, hi, what)
	}
	if validA && validB {
		na, _ := params.AsInt(a)
		nb, _ := params.AsInt(b)
		if na > nb {
			v.errorf("%s.%s must be less than or equal to %s", prefix, lo, hi)
		}
	}
}

func (v *validator) datatypeInfo(cfg map[string]any) {
	val, ok := cfg["datatype_info"]
	if !ok {
		v.errorf("'datatype_info' section is required")
		return
	}
	splits, ok := params.AsMap(val)
	if !ok {
		v.errorf("'datatype_info' must be a dictionary")
		return
	}

	names := make([]string, 0, len(splits))
	for name := range splits {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if err := errors.ValidateSplitName(name); err != nil {
			v.errorf("datatype_info: %s", errors.UserMessage(err))
			continue
		}
		p, ok := params.AsMap(splits[name])
		if !ok {
			v.errorf("datatype_info.%s must be a dictionary", name)
			continue
		}
		if n, ok := p["diagram_num"]; !ok {
			v.errorf("datatype_info.%s.diagram_num is required", name)
		} else if !positiveInt(n) {
			v.errorf("datatype_info.%s.diagram_num must be a positive integer", name)
		}
		if seed, ok := p["seed"]; !ok {
			v.errorf("datatype_info.%s.seed is required", name)
		} else if !params.IsStrictInt(seed) {
			v.errorf("datatype_info.%s.seed must be an integer", name)
		}
	}
}

func (v *validator) split(cfg map[string]any) {
	val, ok := cfg["split"]
	if !ok {
		v.warnf("'split' section is missing (images will not be tiled)")
		return
	}
	section, ok := params.AsMap(val)
	if !ok {
		v.errorf("'split' must be a dictionary")
		return
	}

	valid := true
	for _, key := range []string{"split_width", "split_height"} {
		n, ok := section[key]
		switch {
		case !ok:
			v.errorf("'split.%s' is required", key)
			valid = false
		case !positiveInt(n):
			v.errorf("'split.%s' must be a positive integer", key)
			valid = false
		}
	}
	if !valid {
		return
	}

	width, height, ok := finalSize(cfg)
	if !ok {
		return
	}
	sw, _ := params.AsInt(section["split_width"])
	sh, _ := params.AsInt(section["split_height"])
	if sw > width {
		v.warnf("split_width is larger than the original image width")
	} else if width%sw != 0 {
		v.errorf("final image width %d is not divisible by split_width %d", width, sw)
	}
	if sh > height {
		v.warnf("split_height is larger than the original image height")
	} else if height%sh != 0 {
		v.errorf("final image height %d is not divisible by split_height %d", height, sh)
	}
}

// finalSize mirrors Config.FinalSize on the raw document. It reports false
// when the sizes involved are not usable integers.
func finalSize(cfg map[string]any) (width, height int, ok bool) {
	if !positiveInt(cfg["width"]) || !positiveInt(cfg["height"]) {
		return 0, 0, false
	}
	width, _ = params.AsInt(cfg["width"])
	height, _ = params.AsInt(cfg["height"])

	list, _ := params.AsList(cfg["post_processors"])
	for _, item := range list {
		proc, _ := params.AsMap(item)
		if proc["type"] != string(postprocess.KindCrop) || proc["apply_to"] != string(postprocess.ScopeBoth) {
			continue
		}
		p, _ := params.AsMap(proc["params"])
		cw, cwOK := p["crop_width"]
		ch, chOK := p["crop_height"]
		if !cwOK || !chOK || !positiveInt(cw) || !positiveInt(ch) {
			return 0, 0, false
		}
		width, _ = params.AsInt(cw)
		height, _ = params.AsInt(ch)
	}
	return width, height, true
}
