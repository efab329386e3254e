package postprocess

import (
	"bytes"
	"image"
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/params"
	"github.com/matzehuels/voronoigen/pkg/render"
	"github.com/matzehuels/voronoigen/pkg/rng"
)

// gradient returns a w×h canvas whose pixels encode their position.
func gradient(w, h int) *image.Gray {
	c := render.NewCanvas(w, h)
	for y := range h {
		for x := range w {
			c.Pix[c.PixOffset(x, y)] = uint8((x + 3*y) % 256)
		}
	}
	return c
}

func filled(w, h int, v uint8) *image.Gray {
	c := render.NewCanvas(w, h)
	for i := range c.Pix {
		c.Pix[i] = v
	}
	return c
}

func TestCrop(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		cw, ch    int
		wantLeft  int
		wantTop   int
		wantError bool
	}{
		{"centred", 100, 80, 50, 40, 25, 20, false},
		{"odd margins floor", 11, 11, 4, 4, 3, 3, false},
		{"same size", 64, 32, 64, 32, 0, 0, false},
		{"too wide", 100, 80, 101, 10, 0, 0, true},
		{"too tall", 100, 80, 10, 81, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := gradient(tt.w, tt.h)
			got, err := Crop{Width: tt.cw, Height: tt.ch}.Apply(nil, src)
			if tt.wantError {
				if !errors.Is(err, errors.ErrCodeDimension) {
					t.Fatalf("Apply() error = %v, want DIMENSION", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if got.Bounds() != image.Rect(0, 0, tt.cw, tt.ch) {
				t.Fatalf("Bounds() = %v, want %dx%d at origin", got.Bounds(), tt.cw, tt.ch)
			}
			if got.GrayAt(0, 0) != src.GrayAt(tt.wantLeft, tt.wantTop) {
				t.Errorf("top-left = %v, want source pixel (%d,%d)", got.GrayAt(0, 0), tt.wantLeft, tt.wantTop)
			}
			last := src.GrayAt(tt.wantLeft+tt.cw-1, tt.wantTop+tt.ch-1)
			if got.GrayAt(tt.cw-1, tt.ch-1) != last {
				t.Errorf("bottom-right = %v, want %v", got.GrayAt(tt.cw-1, tt.ch-1), last)
			}
		})
	}
}

func TestCropDefaults(t *testing.T) {
	st, err := NewStage(KindCrop, nil)
	if err != nil {
		t.Fatalf("NewStage() error = %v", err)
	}
	if c := st.(Crop); c.Width != 2560 || c.Height != 1536 {
		t.Errorf("defaults = %+v, want 2560x1536", c)
	}
}

func TestGaussianNoiseZeroIsIdentity(t *testing.T) {
	for _, src := range []*image.Gray{gradient(37, 23), filled(10, 10, 0), filled(10, 10, 255)} {
		got, err := GaussianNoise{Mean: 0, Std: 0}.Apply(rng.New(1), src)
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		if !bytes.Equal(got.Pix, src.Pix) {
			t.Error("GaussianNoise{0, 0} changed the canvas")
		}
	}
}

func TestGaussianNoiseStatistics(t *testing.T) {
	src := filled(200, 200, 128)
	got, err := GaussianNoise{Mean: 5, Std: 10}.Apply(rng.New(2), src)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	xs := make([]float64, len(got.Pix))
	for i, v := range got.Pix {
		xs[i] = float64(v)
	}
	mean, std := stat.MeanStdDev(xs, nil)
	if math.Abs(mean-133) > 0.5 {
		t.Errorf("mean = %v, want ~133", mean)
	}
	if math.Abs(std-10) > 0.5 {
		t.Errorf("std = %v, want ~10", std)
	}
	if src.Pix[0] != 128 {
		t.Error("Apply modified its input")
	}
}

func TestGaussianNoiseClips(t *testing.T) {
	got, err := GaussianNoise{Mean: 0, Std: 200}.Apply(rng.New(3), filled(50, 50, 128))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	var zeros, full int
	for _, v := range got.Pix {
		switch v {
		case 0:
			zeros++
		case 255:
			full++
		}
	}
	if zeros == 0 || full == 0 {
		t.Errorf("expected clipping at both ends, got %d zeros and %d saturated", zeros, full)
	}
}

func TestPerlinFieldRangeAndSmoothness(t *testing.T) {
	const w, h = 128, 96
	field := perlinField(rng.New(4), w, h, 4, 3)
	if len(field) != w*h {
		t.Fatalf("len(field) = %d, want %d", len(field), w*h)
	}
	for i, v := range field {
		if v < -1.5 || v > 1.5 {
			t.Fatalf("field[%d] = %v, want roughly within [-1,1]", i, v)
		}
	}
	// Lattice points carry zero noise.
	if field[0] != 0 {
		t.Errorf("field at lattice origin = %v, want 0", field[0])
	}
	// Neighbouring samples are close: coherent, not white noise.
	for y := range h {
		for x := 1; x < w; x++ {
			if d := math.Abs(field[y*w+x] - field[y*w+x-1]); d > 0.2 {
				t.Fatalf("jump %v between (%d,%d) and its left neighbour", d, x, y)
			}
		}
	}
}

func TestPerlinRescaleUsesObservedRange(t *testing.T) {
	field := []float64{-0.2, 0, 0.3}
	rescale(field, 20)
	want := []float64{-20, -4, 20}
	for i := range want {
		if math.Abs(field[i]-want[i]) > 1e-9 {
			t.Errorf("field[%d] = %v, want %v", i, field[i], want[i])
		}
	}

	flat := []float64{0.5, 0.5}
	rescale(flat, 20)
	if flat[0] != 0 || flat[1] != 0 {
		t.Errorf("flat field rescaled to %v, want zeros", flat)
	}
}

func TestPerlinNoiseSpansRange(t *testing.T) {
	got, err := PerlinNoise{ResX: 4, ResY: 4, Range: 20}.Apply(rng.New(5), filled(64, 64, 100))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	lo, hi := uint8(255), uint8(0)
	for _, v := range got.Pix {
		lo, hi = min(lo, v), max(hi, v)
	}
	if lo != 80 || hi != 120 {
		t.Errorf("output range = [%d,%d], want exactly [80,120]", lo, hi)
	}
}

func TestNewPerlinNoise(t *testing.T) {
	tests := []struct {
		name     string
		p        params.Params
		want     PerlinNoise
		wantCode errors.Code
	}{
		{"defaults", params.Params{}, PerlinNoise{ResX: 32, ResY: 32, Range: 20}, ""},
		{"rows then cols", params.Params{"res": []any{2, 8}, "noise_range": 5}, PerlinNoise{ResX: 8, ResY: 2, Range: 5}, ""},
		{"three elements", params.Params{"res": []any{1, 2, 3}}, PerlinNoise{}, errors.ErrCodeConfiguration},
		{"zero res", params.Params{"res": []any{0, 2}}, PerlinNoise{}, errors.ErrCodeConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := NewStage(KindPerlinNoise, tt.p)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("NewStage() error = %v, want %v", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStage() error = %v", err)
			}
			if st.(PerlinNoise) != tt.want {
				t.Errorf("NewStage() = %+v, want %+v", st, tt.want)
			}
		})
	}
}

func TestEllipticalMask(t *testing.T) {
	m := EllipticalMask{MinNum: 3, MaxNum: 3, MinSize: 5, MaxSize: 8, Color: 7}
	src := filled(100, 100, 200)

	got, err := m.Apply(rng.New(6), src)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	masked := 0
	for _, v := range got.Pix {
		switch v {
		case 7:
			masked++
		case 200:
		default:
			t.Fatalf("pixel = %d, want 7 or 200", v)
		}
	}
	if masked == 0 {
		t.Error("no pixels were masked")
	}
	// Three ellipses with semi-axes at most 8 cover at most 3·π·8·8 pixels.
	area := 3 * math.Pi * 8 * 8
	if limit := int(area) + 100; masked > limit {
		t.Errorf("masked %d pixels, want at most ~%d", masked, limit)
	}
	if src.Pix[0] != 200 {
		t.Error("Apply modified its input")
	}
}

func TestEllipticalMaskZeroCount(t *testing.T) {
	src := gradient(40, 40)
	got, err := EllipticalMask{MinNum: 0, MaxNum: 0, MinSize: 5, MaxSize: 5}.Apply(rng.New(1), src)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !bytes.Equal(got.Pix, src.Pix) {
		t.Error("zero ellipses changed the canvas")
	}
}

func TestNewEllipticalMask(t *testing.T) {
	tests := []struct {
		name     string
		p        params.Params
		want     EllipticalMask
		wantCode errors.Code
	}{
		{"defaults", params.Params{}, EllipticalMask{MinNum: 0, MaxNum: 10, MinSize: 10, MaxSize: 40, Color: 0}, ""},
		{"count only", params.Params{"min_num": 1, "max_num": 4}, EllipticalMask{MinNum: 1, MaxNum: 4, MinSize: 10, MaxSize: 40}, ""},
		{"list color", params.Params{"color": []any{90, 90, 90}}, EllipticalMask{MaxNum: 10, MinSize: 10, MaxSize: 40, Color: 90}, ""},
		{"inverted count", params.Params{"min_num": 5, "max_num": 1}, EllipticalMask{}, errors.ErrCodeConfiguration},
		{"inverted size", params.Params{"min_size": 50}, EllipticalMask{}, errors.ErrCodeConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := NewStage(KindEllipticalMask, tt.p)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("NewStage() error = %v, want %v", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStage() error = %v", err)
			}
			if st.(EllipticalMask) != tt.want {
				t.Errorf("NewStage() = %+v, want %+v", st, tt.want)
			}
		})
	}
}

func TestNewStageUnknown(t *testing.T) {
	if _, err := NewStage("blur", nil); !errors.Is(err, errors.ErrCodeUnknownVariant) {
		t.Errorf("NewStage(blur) error = %v, want UNKNOWN_VARIANT", err)
	}
	if got := len(Kinds()); got != 4 {
		t.Errorf("len(Kinds()) = %d, want 4", got)
	}
}
