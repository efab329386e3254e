package io

import (
	"context"
	"image"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/voronoigen/pkg/errors"
)

// DefaultSubfolders are compared when no subfolders are given.
var DefaultSubfolders = []string{"train/images", "valid/images", "train/labels", "valid/labels"}

// Mismatch is a file present in both roots whose contents differ.
type Mismatch struct {
	Subfolder string
	Name      string
	Reason    string
}

// CompareReport summarizes a folder comparison. File names are reported as
// subfolder/name.
type CompareReport struct {
	Checked    int
	Mismatches []Mismatch
	OnlyInBase []string
	OnlyInTest []string
	Warnings   []string
}

// Match reports whether every compared file was identical.
func (r *CompareReport) Match() bool {
	return len(r.Mismatches) == 0
}

// CompareFolders compares the PNG files under each subfolder of base and
// test pixel by pixel. Only files present in both roots are compared; the
// rest are listed in the report. Subfolders are processed concurrently.
func CompareFolders(ctx context.Context, base, test string, subfolders []string) (*CompareReport, error) {
	for _, root := range []string{base, test} {
		if info, err := os.Stat(root); err != nil || !info.IsDir() {
			return nil, errors.Configuration("folder does not exist: %s", root)
		}
	}
	if len(subfolders) == 0 {
		subfolders = DefaultSubfolders
	}

	parts := make([]CompareReport, len(subfolders))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, sub := range subfolders {
		g.Go(func() error {
			return compareSubfolder(ctx, base, test, sub, &parts[i])
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &CompareReport{}
	for _, p := range parts {
		report.Checked += p.Checked
		report.Mismatches = append(report.Mismatches, p.Mismatches...)
		report.OnlyInBase = append(report.OnlyInBase, p.OnlyInBase...)
		report.OnlyInTest = append(report.OnlyInTest, p.OnlyInTest...)
		report.Warnings = append(report.Warnings, p.Warnings...)
	}
	return report, nil
}

func compareSubfolder(ctx context.Context, base, test, sub string, out *CompareReport) error {
	baseDir, testDir := filepath.Join(base, sub), filepath.Join(test, sub)
	baseFiles, ok := listPNGs(baseDir)
	if !ok {
		out.Warnings = append(out.Warnings, "subfolder not found in base: "+baseDir)
		return nil
	}
	testFiles, ok := listPNGs(testDir)
	if !ok {
		out.Warnings = append(out.Warnings, "subfolder not found in test: "+testDir)
		return nil
	}

	if !slices.Equal(baseFiles, testFiles) {
		out.Warnings = append(out.Warnings, "file list mismatch in: "+sub)
	}
	for _, name := range baseFiles {
		if !slices.Contains(testFiles, name) {
			out.OnlyInBase = append(out.OnlyInBase, path.Join(sub, name))
		}
	}
	for _, name := range testFiles {
		if !slices.Contains(baseFiles, name) {
			out.OnlyInTest = append(out.OnlyInTest, path.Join(sub, name))
		}
	}

	for _, name := range baseFiles {
		if !slices.Contains(testFiles, name) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if reason := comparePNG(filepath.Join(baseDir, name), filepath.Join(testDir, name)); reason != "" {
			out.Mismatches = append(out.Mismatches, Mismatch{Subfolder: sub, Name: name, Reason: reason})
			continue
		}
		out.Checked++
	}
	return nil
}

// listPNGs returns the sorted .png file names in dir, or false when dir
// does not exist.
func listPNGs(dir string) ([]string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, false
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".png") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, true
}

// comparePNG returns an empty string when both files decode to the same
// pixels, and the reason they differ otherwise.
func comparePNG(a, b string) string {
	imgA, err := LoadPNG(a)
	if err != nil {
		return errors.UserMessage(err)
	}
	imgB, err := LoadPNG(b)
	if err != nil {
		return errors.UserMessage(err)
	}
	if !samePixels(imgA, imgB) {
		return "content mismatch"
	}
	return ""
}

// samePixels compares two images in RGBA space, so a gray PNG equals an
// RGB PNG holding the same intensities.
func samePixels(a, b image.Image) bool {
	ba, bb := a.Bounds(), b.Bounds()
	if ba.Size() != bb.Size() {
		return false
	}
	for y := range ba.Dy() {
		for x := range ba.Dx() {
			r1, g1, b1, a1 := a.At(ba.Min.X+x, ba.Min.Y+y).RGBA()
			r2, g2, b2, a2 := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				return false
			}
		}
	}
	return true
}
