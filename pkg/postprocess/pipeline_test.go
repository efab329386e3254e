package postprocess

import (
	"bytes"
	"image"
	"testing"

	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/params"
	"github.com/matzehuels/voronoigen/pkg/rng"
)

func TestEmptyPipelineIsIdentity(t *testing.T) {
	p, err := New(nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	img, lbl := gradient(30, 20), filled(30, 20, 9)

	gotImg, gotLbl, err := p.Process(rng.New(1), img, lbl)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !bytes.Equal(gotImg.Pix, img.Pix) || !bytes.Equal(gotLbl.Pix, lbl.Pix) {
		t.Error("empty pipeline changed a canvas")
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}

func TestImageScopeNeverTouchesLabel(t *testing.T) {
	p, err := New([]Descriptor{
		{Type: KindGaussianNoise, Params: params.Params{"mean": 0, "std": 30}, Scope: ScopeImage},
		{Type: KindEllipticalMask, Params: params.Params{"min_num": 5, "max_num": 5}, Scope: ScopeImage},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	img, lbl := filled(64, 64, 100), gradient(64, 64)

	gotImg, gotLbl, err := p.Process(rng.New(2), img, lbl)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !bytes.Equal(gotLbl.Pix, lbl.Pix) {
		t.Error("image-scoped stages modified the label")
	}
	if bytes.Equal(gotImg.Pix, img.Pix) {
		t.Error("image-scoped stages left the image unchanged")
	}
}

func TestLabelScopeRunsInImagePass(t *testing.T) {
	p, err := New([]Descriptor{
		{Type: KindGaussianNoise, Params: params.Params{"mean": 50, "std": 0}, Scope: ScopeLabel},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	img, lbl := filled(32, 32, 100), filled(32, 32, 0)

	gotImg, gotLbl, err := p.Process(rng.New(2), img, lbl)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !bytes.Equal(gotLbl.Pix, lbl.Pix) {
		t.Error("label-scoped stage modified the label")
	}
	if got := gotImg.GrayAt(5, 5).Y; got != 150 {
		t.Errorf("image pixel = %d, want 150", got)
	}
}

func TestLabelAndImageScopesKeepDeclaredOrder(t *testing.T) {
	p, err := New([]Descriptor{
		{Type: KindGaussianNoise, Params: params.Params{"mean": -100, "std": 0}, Scope: ScopeLabel},
		{Type: KindGaussianNoise, Params: params.Params{"mean": 200, "std": 0}, Scope: ScopeImage},
		{Type: KindGaussianNoise, Params: params.Params{"mean": -100, "std": 0}, Scope: ScopeLabel},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	// 250 - 100 = 150, + 200 clips to 255, - 100 = 155. Running the image
	// stage first gives 55 and running both label stages first gives 250.
	gotImg, _, err := p.Process(rng.New(1), filled(4, 4, 250), filled(4, 4, 0))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got := gotImg.GrayAt(0, 0).Y; got != 155 {
		t.Errorf("image pixel = %d, want 155", got)
	}
}

func TestBothScopeCropsInLockstep(t *testing.T) {
	p, err := New([]Descriptor{
		{Type: KindCrop, Params: params.Params{"crop_width": 40, "crop_height": 30}, Scope: ScopeBoth},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	src := gradient(100, 50)

	gotImg, gotLbl, err := p.Process(rng.New(1), src, gradient(100, 50))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	want := image.Rect(0, 0, 40, 30)
	if gotImg.Bounds() != want || gotLbl.Bounds() != want {
		t.Fatalf("bounds = %v / %v, want %v", gotImg.Bounds(), gotLbl.Bounds(), want)
	}
	if !bytes.Equal(gotImg.Pix, gotLbl.Pix) {
		t.Error("identical inputs cropped differently")
	}
}

func TestBothScopeDrawsIndependently(t *testing.T) {
	p, err := New([]Descriptor{
		{Type: KindEllipticalMask, Params: params.Params{"min_num": 4, "max_num": 4, "min_size": 6, "max_size": 12, "color": 255}, Scope: ScopeBoth},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	gotImg, gotLbl, err := p.Process(rng.New(3), filled(80, 80, 0), filled(80, 80, 0))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if bytes.Equal(gotImg.Pix, gotLbl.Pix) {
		t.Error("image and label received the same mask pattern")
	}
}

func TestBothStagesRunBeforeImageStages(t *testing.T) {
	// Declared image-first: the crop must still run first, otherwise the
	// image stage would see the full-size canvas and consume more draws.
	descs := []Descriptor{
		{Type: KindGaussianNoise, Params: params.Params{"std": 5}, Scope: ScopeImage},
		{Type: KindCrop, Params: params.Params{"crop_width": 10, "crop_height": 10}, Scope: ScopeBoth},
	}
	p, err := New(descs)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	gotImg, _, err := p.Process(rng.New(4), filled(40, 40, 100), filled(40, 40, 0))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	crop, _ := Crop{Width: 10, Height: 10}.Apply(nil, filled(40, 40, 100))
	s := rng.New(4)
	want, _ := GaussianNoise{Std: 5}.Apply(s, crop)
	if !bytes.Equal(gotImg.Pix, want.Pix) {
		t.Error("image stage did not run after the both-scoped crop")
	}
}

func TestPipelineDeterministic(t *testing.T) {
	descs := []Descriptor{
		{Type: KindEllipticalMask, Params: params.Params{"min_num": 0, "max_num": 6}, Scope: ScopeBoth},
		{Type: KindGaussianNoise, Params: params.Params{"std": 20}, Scope: ScopeImage},
		{Type: KindPerlinNoise, Params: params.Params{"res": []any{2, 2}, "noise_range": 20}, Scope: ScopeImage},
	}
	run := func() (*image.Gray, *image.Gray) {
		p, err := New(descs)
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		img, lbl, err := p.Process(rng.New(99), gradient(64, 64), filled(64, 64, 0))
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		return img, lbl
	}
	i1, l1 := run()
	i2, l2 := run()
	if !bytes.Equal(i1.Pix, i2.Pix) || !bytes.Equal(l1.Pix, l2.Pix) {
		t.Error("same seed produced different outputs")
	}
}

func TestPipelineErrors(t *testing.T) {
	tests := []struct {
		name     string
		descs    []Descriptor
		wantCode errors.Code
		atBuild  bool
	}{
		{
			name:     "unknown kind",
			descs:    []Descriptor{{Type: "sharpen", Scope: ScopeImage}},
			wantCode: errors.ErrCodeUnknownVariant,
			atBuild:  true,
		},
		{
			name:     "unknown scope",
			descs:    []Descriptor{{Type: KindCrop, Scope: "mask"}},
			wantCode: errors.ErrCodeConfiguration,
			atBuild:  true,
		},
		{
			name:     "crop larger than canvas",
			descs:    []Descriptor{{Type: KindCrop, Params: params.Params{"crop_width": 100, "crop_height": 10}, Scope: ScopeBoth}},
			wantCode: errors.ErrCodeDimension,
		},
		{
			name:     "image-only crop breaks pairing",
			descs:    []Descriptor{{Type: KindCrop, Params: params.Params{"crop_width": 10, "crop_height": 10}, Scope: ScopeImage}},
			wantCode: errors.ErrCodeDimension,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.descs)
			if tt.atBuild {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			_, _, err = p.Process(rng.New(1), filled(50, 50, 0), filled(50, 50, 0))
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Process() error = %v, want %v", err, tt.wantCode)
			}
		})
	}
}
