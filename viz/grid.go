// Package viz sweeps a trained model over a two-dimensional feature grid
// and renders the resulting decision surface.
package viz

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/pkg/errors"

	typesClassifier "github.com/rpplayground/QClassify/types/classifier"
)

// GridOptions bounds one decision-surface sweep: two chosen positions of a
// fixed base feature vector are varied over a rectangle while the rest of
// the vector is held constant.
type GridOptions struct {
	XMin, XMax float64
	YMin, YMax float64
	// Resolution is the number of sample points per axis.
	Resolution int
	// BaseFeatures is the feature vector the sweep perturbs. Nil means a
	// two-feature zero vector swept in full.
	BaseFeatures []float64
	// XIndex and YIndex are the swept positions within BaseFeatures. They
	// must be distinct; when both are zero YIndex defaults to 1.
	XIndex int
	YIndex int
	// Weights is the fixed weight vector the model is evaluated at.
	Weights []float64
}

// Grid is the sampled decision surface. Values is indexed [row][column]
// with row 0 at YMin and column 0 at XMin.
type Grid struct {
	Options GridOptions
	Values  [][]float64
}

// EvaluateGrid samples the model over the configured feature rectangle.
func EvaluateGrid(
	ctx context.Context,
	model typesClassifier.Model,
	options GridOptions,
) (*Grid, error) {
	if options.Resolution < 2 {
		return nil, errors.Wrap(
			typesClassifier.ErrConfiguration,
			"grid resolution below 2",
		)
	}
	if options.XMax <= options.XMin || options.YMax <= options.YMin {
		return nil, errors.Wrap(
			typesClassifier.ErrConfiguration,
			"empty grid extent",
		)
	}

	base := options.BaseFeatures
	if base == nil {
		base = make([]float64, 2)
	}
	xIndex, yIndex := options.XIndex, options.YIndex
	if xIndex == 0 && yIndex == 0 {
		yIndex = 1
	}
	if xIndex < 0 || xIndex >= len(base) ||
		yIndex < 0 || yIndex >= len(base) {
		return nil, errors.Wrapf(
			typesClassifier.ErrConfiguration,
			"swept indices %d,%d outside base vector of length %d",
			xIndex,
			yIndex,
			len(base),
		)
	}
	if xIndex == yIndex {
		return nil, errors.Wrapf(
			typesClassifier.ErrConfiguration,
			"swept indices coincide at %d",
			xIndex,
		)
	}

	n := options.Resolution
	xStep := (options.XMax - options.XMin) / float64(n-1)
	yStep := (options.YMax - options.YMin) / float64(n-1)

	values := make([][]float64, n)
	features := make([]float64, len(base))
	for row := 0; row < n; row++ {
		values[row] = make([]float64, n)
		y := options.YMin + float64(row)*yStep
		for col := 0; col < n; col++ {
			x := options.XMin + float64(col)*xStep

			copy(features, base)
			features[xIndex] = x
			features[yIndex] = y

			output, err := model.Evaluate(ctx, features, options.Weights)
			if err != nil {
				return nil, errors.Wrapf(
					err,
					"evaluate grid point (%d,%d)",
					row,
					col,
				)
			}
			values[row][col] = output
		}
	}

	return &Grid{Options: options, Values: values}, nil
}

// Image renders the grid as a grayscale image, white for output 1, with
// row 0 at the bottom edge. Outputs outside [0,1] are clipped.
func (g *Grid) Image() *image.Gray {
	n := len(g.Values)
	img := image.NewGray(image.Rect(0, 0, n, n))
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			v := g.Values[row][col]
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			img.SetGray(col, n-1-row, color.Gray{Y: uint8(v * 255)})
		}
	}
	return img
}

// WritePNG renders the grid to a grayscale PNG file.
func (g *Grid) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "write png")
	}
	defer f.Close()

	if err := png.Encode(f, g.Image()); err != nil {
		return errors.Wrap(err, "write png")
	}

	return nil
}
