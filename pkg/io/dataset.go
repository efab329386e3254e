package io

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/observability"
)

// Directory names inside a split.
const (
	ImagesDir = "images"
	LabelsDir = "labels"
)

// DatasetWriter writes image/label pairs under a dataset root.
// It is safe for concurrent use as long as callers write distinct indices.
type DatasetWriter struct {
	Root string
}

// NewDatasetWriter returns a writer rooted at dir.
func NewDatasetWriter(dir string) *DatasetWriter {
	return &DatasetWriter{Root: dir}
}

// Prepare creates the images/ and labels/ directories of every split.
// Existing directories and files are left in place.
func (w *DatasetWriter) Prepare(splits []string) error {
	if err := errors.ValidateOutputDir(w.Root); err != nil {
		return err
	}
	for _, split := range splits {
		if err := errors.ValidateSplitName(split); err != nil {
			return err
		}
		for _, sub := range []string{ImagesDir, LabelsDir} {
			dir := filepath.Join(w.Root, split, sub)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "create %s", dir)
			}
		}
	}
	return nil
}

// PairPaths returns the image and label paths of pair index in split.
func (w *DatasetWriter) PairPaths(split string, index int) (imagePath, labelPath string) {
	name := strconv.Itoa(index) + ".png"
	return filepath.Join(w.Root, split, ImagesDir, name), filepath.Join(w.Root, split, LabelsDir, name)
}

// Write stores one pair. The image is written before the label.
func (w *DatasetWriter) Write(ctx context.Context, split string, index int, img, lbl *image.Gray) (err error) {
	start := time.Now()
	var written int64
	defer func() {
		observability.Output().OnPairWritten(ctx, split, index, written, time.Since(start), err)
	}()

	imagePath, labelPath := w.PairPaths(split, index)
	n, err := SavePNG(imagePath, img)
	written += n
	if err != nil {
		return err
	}
	n, err = SavePNG(labelPath, lbl)
	written += n
	return err
}

// EncodePNG encodes a canvas as an 8-bit gray PNG.
func EncodePNG(img *image.Gray) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// SavePNG encodes img and writes it to path, returning the bytes written.
func SavePNG(path string, img *image.Gray) (int64, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return int64(len(data)), nil
}

// LoadPNG reads a PNG file of any color model.
func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode %s", path)
	}
	return img, nil
}
