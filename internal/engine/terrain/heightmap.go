package terrain

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
)

// LoadHeightmap decodes an image file and builds its elevation grid.
func LoadHeightmap(path string, divisor float32) (*Heightmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening heightmap: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding heightmap %s: %w", path, err)
	}

	hm, err := FromImage(img, divisor)
	if err != nil {
		return nil, fmt.Errorf("heightmap %s (%s): %w", path, format, err)
	}
	return hm, nil
}

// FromImage builds an elevation grid from the red channel of img.
// Sample (x, z) is the pixel at column x, row z divided by divisor.
// Sources with more than 8 bits per channel contribute their high byte.
func FromImage(img image.Image, divisor float32) (*Heightmap, error) {
	if divisor <= 0 {
		return nil, fmt.Errorf("height divisor must be positive, got %v", divisor)
	}

	rect := img.Bounds()
	width, depth := rect.Dx(), rect.Dy()
	if width == 0 || depth == 0 {
		return nil, fmt.Errorf("empty image (%dx%d)", width, depth)
	}

	altitudes := make([][]float32, width)
	for x := range width {
		altitudes[x] = make([]float32, depth)
		for z := range depth {
			r, _, _, _ := img.At(rect.Min.X+x, rect.Min.Y+z).RGBA()
			altitudes[x][z] = float32(uint8(r>>8)) / divisor
		}
	}

	return &Heightmap{
		Altitudes: altitudes,
		Width:     width,
		Depth:     depth,
		Divisor:   divisor,
	}, nil
}

// HeightAt returns the sample at grid coordinate (x, z).
// Coordinates outside the grid return an error wrapping ErrOutOfBounds.
func (hm *Heightmap) HeightAt(x, z int) (float32, error) {
	if x < 0 || z < 0 || x >= hm.Width || z >= hm.Depth {
		return 0, fmt.Errorf("%w: (%d, %d) not in %dx%d", ErrOutOfBounds, x, z, hm.Width, hm.Depth)
	}
	return hm.Altitudes[x][z], nil
}

// Center returns the grid midpoint, which is always a valid coordinate.
func (hm *Heightmap) Center() (x, z int) {
	return hm.Width / 2, hm.Depth / 2
}

// QuadCount returns the number of grid cells that produce geometry.
// The last row and column have no neighbor and emit nothing.
func (hm *Heightmap) QuadCount() int {
	if hm.Width < 2 || hm.Depth < 2 {
		return 0
	}
	return (hm.Width - 1) * (hm.Depth - 1)
}
