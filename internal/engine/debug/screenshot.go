// Package debug provides developer utilities for the viewer.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes framebuffer captures as PNG files.
type Screenshots struct {
	outputDir string
	prefix    string

	// now is replaced in tests.
	now func() time.Time
}

// NewScreenshots creates a screenshot writer for outputDir.
// An empty outputDir writes to the working directory.
func NewScreenshots(outputDir, prefix string) *Screenshots {
	return &Screenshots{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// Save writes bottom-up RGBA rows (as read back from OpenGL) to a new PNG file
// and returns its path. Captures within the same second get a numeric suffix.
func (s *Screenshots) Save(pixels []byte, width, height int) (string, error) {
	img, err := ImageFromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}

	// Create output directory if needed
	if s.outputDir != "" {
		if err := os.MkdirAll(s.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename, file, err := s.create()
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return filename, nil
}

func (s *Screenshots) create() (string, *os.File, error) {
	base := fmt.Sprintf("%s_%s", s.prefix, s.now().Format("2006-01-02_15-04-05"))
	for n := 0; n < 100; n++ {
		name := base + ".png"
		if n > 0 {
			name = fmt.Sprintf("%s_%d.png", base, n)
		}
		path := filepath.Join(s.outputDir, name)

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return path, file, nil
		}
		if !os.IsExist(err) {
			return "", nil, fmt.Errorf("creating file: %w", err)
		}
	}
	return "", nil, fmt.Errorf("creating file: too many screenshots named %s", base)
}

// ImageFromPixels converts bottom-up RGBA rows into a top-down image.
func ImageFromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid screenshot size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcOffset := (height - 1 - y) * rowSize // Flip Y
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}

	return img, nil
}
