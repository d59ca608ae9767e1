// Package debug writes baked geometry buffers as PNG images for
// inspection.
package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/MkFair/rbfx/internal/glow"
	"github.com/MkFair/rbfx/pkg/math"
)

// BufferDumper writes geometry buffer visualizations into a directory.
type BufferDumper struct {
	outputDir string
}

// NewBufferDumper creates a dumper writing into outputDir.
func NewBufferDumper(outputDir string) *BufferDumper {
	return &BufferDumper{outputDir: outputDir}
}

// idPalette returns a stable, distinguishable color per geometry id.
// Id zero (no coverage) is black.
func idPalette(id uint32) color.RGBA {
	if id == 0 {
		return color.RGBA{A: 255}
	}
	// Low-discrepancy hue walk keeps neighboring ids apart.
	hue := float64(id) * 0.6180339887
	hue -= float64(int(hue))
	r, g, b := hueToRGB(hue)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func hueToRGB(hue float64) (uint8, uint8, uint8) {
	segment := int(hue * 6)
	f := hue*6 - float64(segment)
	q := uint8(255 * (1 - f))
	t := uint8(255 * f)
	switch segment % 6 {
	case 0:
		return 255, t, 0
	case 1:
		return q, 255, 0
	case 2:
		return 0, 255, t
	case 3:
		return 0, q, 255
	case 4:
		return t, 0, 255
	default:
		return 255, 0, q
	}
}

// DumpIDs writes the geometry id map of a buffer.
func (d *BufferDumper) DumpIDs(buffer glow.GeometryBuffer) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, buffer.Width, buffer.Height))
	for y := 0; y < buffer.Height; y++ {
		for x := 0; x < buffer.Width; x++ {
			img.SetRGBA(x, y, idPalette(buffer.IDs[y*buffer.Width+x]))
		}
	}
	return d.save(img, fmt.Sprintf("chart_%03d_ids.png", buffer.Index))
}

// DumpNormals writes the smooth normals of a buffer, mapped from [-1, 1]
// to color channels.
func (d *BufferDumper) DumpNormals(buffer glow.GeometryBuffer) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, buffer.Width, buffer.Height))
	for y := 0; y < buffer.Height; y++ {
		for x := 0; x < buffer.Width; x++ {
			index := y*buffer.Width + x
			if buffer.IDs[index] == 0 {
				img.SetRGBA(x, y, color.RGBA{A: 255})
				continue
			}
			normal := buffer.SmoothNormals[index]
			img.SetRGBA(x, y, color.RGBA{
				R: channelByte(normal.X),
				G: channelByte(normal.Y),
				B: channelByte(normal.Z),
				A: 255,
			})
		}
	}
	return d.save(img, fmt.Sprintf("chart_%03d_normals.png", buffer.Index))
}

func channelByte(v float32) uint8 {
	scaled := (v*0.5 + 0.5) * 255
	return uint8(math.MaxF(0, math.MinF(255, scaled)))
}

func (d *BufferDumper) save(img image.Image, name string) (string, error) {
	if d.outputDir != "" {
		if err := os.MkdirAll(d.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
		name = filepath.Join(d.outputDir, name)
	}

	file, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return name, nil
}
