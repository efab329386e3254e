// Package tile splits image/label pairs into equal-size co-located tiles.
package tile

import (
	"image"

	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/render"
)

// Tiler cuts canvases into Width×Height tiles. A nil *Tiler passes pairs
// through unchanged.
type Tiler struct {
	Width  int
	Height int
}

// New returns a tiler for width×height tiles.
func New(width, height int) *Tiler {
	return &Tiler{Width: width, Height: height}
}

// Grid returns the number of tile rows and columns for a canvas of the given
// size, or a DIMENSION error when the tile does not divide it exactly.
func (t *Tiler) Grid(width, height int) (rows, cols int, err error) {
	if t.Width <= 0 || t.Height <= 0 {
		return 0, 0, errors.Dimension("tile size %dx%d must be positive", t.Width, t.Height)
	}
	if width%t.Width != 0 || height%t.Height != 0 {
		return 0, 0, errors.Dimension("canvas %dx%d is not divisible by tile size %dx%d", width, height, t.Width, t.Height)
	}
	return height / t.Height, width / t.Width, nil
}

// Split cuts image and label with the same grid. Tiles are ordered row-major
// (index = row*cols + col) and are independent copies with bounds at the
// origin. Without a tiler the pair is returned as single-element slices.
func (t *Tiler) Split(img, lbl *image.Gray) ([]*image.Gray, []*image.Gray, error) {
	if t == nil {
		return []*image.Gray{img}, []*image.Gray{lbl}, nil
	}
	ib, lb := img.Bounds(), lbl.Bounds()
	if ib.Size() != lb.Size() {
		return nil, nil, errors.Dimension("image %dx%d and label %dx%d differ", ib.Dx(), ib.Dy(), lb.Dx(), lb.Dy())
	}
	rows, cols, err := t.Grid(ib.Dx(), ib.Dy())
	if err != nil {
		return nil, nil, err
	}

	imgs := make([]*image.Gray, 0, rows*cols)
	lbls := make([]*image.Gray, 0, rows*cols)
	for r := range rows {
		for c := range cols {
			cell := image.Rect(c*t.Width, r*t.Height, (c+1)*t.Width, (r+1)*t.Height)
			imgs = append(imgs, cut(img, cell))
			lbls = append(lbls, cut(lbl, cell))
		}
	}
	return imgs, lbls, nil
}

func cut(canvas *image.Gray, cell image.Rectangle) *image.Gray {
	return render.Clone(canvas.SubImage(cell.Add(canvas.Bounds().Min)).(*image.Gray))
}
