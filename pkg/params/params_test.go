package params

import (
	"testing"

	"github.com/matzehuels/voronoigen/pkg/errors"
)

func TestInt(t *testing.T) {
	tests := []struct {
		name     string
		p        Params
		want     int
		wantCode errors.Code
	}{
		{"yaml int", Params{"n": 5}, 5, ""},
		{"toml int64", Params{"n": int64(7)}, 7, ""},
		{"integral float", Params{"n": 3.0}, 3, ""},
		{"missing", Params{}, 0, errors.ErrCodeMissingParameter},
		{"fractional float", Params{"n": 2.5}, 0, errors.ErrCodeConfiguration},
		{"string", Params{"n": "5"}, 0, errors.ErrCodeConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.p.Int("random", "n")
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("Int() error = %v, want code %v", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Int() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Int() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFloatOr(t *testing.T) {
	p := Params{"std": int64(20), "mean": 0.5}

	if got, _ := p.FloatOr("noise", "std", 1); got != 20 {
		t.Errorf("FloatOr(std) = %v, want 20", got)
	}
	if got, _ := p.FloatOr("noise", "mean", 1); got != 0.5 {
		t.Errorf("FloatOr(mean) = %v, want 0.5", got)
	}
	if got, _ := p.FloatOr("noise", "missing", 9); got != 9 {
		t.Errorf("FloatOr(missing) = %v, want 9", got)
	}
}

func TestLists(t *testing.T) {
	p := Params{
		"points_num":   []any{1000, int64(800)},
		"min_distance": []any{30, 50.5},
		"bad":          []any{"x"},
		"scalar":       3,
	}

	ints, err := p.IntList("random", "points_num")
	if err != nil || len(ints) != 2 || ints[0] != 1000 || ints[1] != 800 {
		t.Errorf("IntList() = %v, %v", ints, err)
	}

	floats, err := p.FloatList("poisson_disk", "min_distance")
	if err != nil || len(floats) != 2 || floats[0] != 30 || floats[1] != 50.5 {
		t.Errorf("FloatList() = %v, %v", floats, err)
	}

	if _, err := p.IntList("random", "bad"); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("IntList(bad) error = %v, want CONFIGURATION", err)
	}
	if _, err := p.IntList("random", "scalar"); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("IntList(scalar) error = %v, want CONFIGURATION", err)
	}
	if _, err := p.FloatList("random", "absent"); !errors.Is(err, errors.ErrCodeMissingParameter) {
		t.Errorf("FloatList(absent) error = %v, want MISSING_PARAMETER", err)
	}
}

func TestColorOr(t *testing.T) {
	tests := []struct {
		name    string
		p       Params
		want    uint8
		wantErr bool
	}{
		{"default", Params{}, 255, false},
		{"scalar", Params{"color": 128}, 128, false},
		{"list uses first element", Params{"color": []any{10, 20, 30}}, 10, false},
		{"toml list", Params{"color": []any{int64(0), int64(0), int64(0)}}, 0, false},
		{"out of range", Params{"color": 300}, 0, true},
		{"empty list", Params{"color": []any{}}, 0, true},
		{"string", Params{"color": "white"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.p.ColorOr("label_info", "color", 255)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ColorOr() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ColorOr() = %d, want %d", got, tt.want)
			}
		})
	}
}
