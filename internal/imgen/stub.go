package imgen

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"

	"triptic/internal/triptic"
)

// Stub image dimensions, matching the portrait kiosk screens.
const (
	stubWidth  = 192
	stubHeight = 342
)

// StubRenderer produces deterministic solid-color PNGs derived from the
// prompt. It stands in for a real generation backend in development and
// tests; output for a given prompt never changes between runs.
type StubRenderer struct{}

// NewStubRenderer creates a StubRenderer.
func NewStubRenderer() *StubRenderer {
	return &StubRenderer{}
}

func (r *StubRenderer) Generate(ctx context.Context, prompt string) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	return encodeSolid(promptColor(prompt))
}

// Edit blends the base image's top-left pixel color with the prompt color,
// which makes edit chains visibly distinct while staying deterministic.
func (r *StubRenderer) Edit(ctx context.Context, prompt string, base []byte) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	img, err := decode(base)
	if err != nil {
		return nil, "", err
	}

	c1 := color.NRGBAModel.Convert(img.At(img.Bounds().Min.X, img.Bounds().Min.Y)).(color.NRGBA)
	c2 := promptColor(prompt)
	return encodeSolid(color.NRGBA{
		R: uint8((uint16(c1.R) + uint16(c2.R)) / 2),
		G: uint8((uint16(c1.G) + uint16(c2.G)) / 2),
		B: uint8((uint16(c1.B) + uint16(c2.B)) / 2),
		A: 0xff,
	})
}

func (r *StubRenderer) Flip(ctx context.Context, base []byte) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	img, err := decode(base)
	if err != nil {
		return nil, "", err
	}

	b := img.Bounds()
	flipped := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			flipped.Set(b.Max.X-1-(x-b.Min.X), y, img.At(x, y))
		}
	}
	return encodePNG(flipped)
}

// promptColor maps a prompt to a stable opaque color.
func promptColor(prompt string) color.NRGBA {
	h := fnv.New32a()
	h.Write([]byte(prompt))
	sum := h.Sum32()
	return color.NRGBA{
		R: uint8(sum >> 16),
		G: uint8(sum >> 8),
		B: uint8(sum),
		A: 0xff,
	}
}

func encodeSolid(c color.NRGBA) ([]byte, string, error) {
	img := image.NewNRGBA(image.Rect(0, 0, stubWidth, stubHeight))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), ".png", nil
}

func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding base image: %w", err)
	}
	return img, nil
}

// Compile-time check that StubRenderer implements the triptic.Renderer interface
var _ triptic.Renderer = (*StubRenderer)(nil)
