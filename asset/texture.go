// Package asset loads game assets into GPU resources. Decoded
// textures are cached by path so repeated sprite lookups stay cheap.
package asset

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io/fs"
	"path"
	"strings"
	"sync"

	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/korin"
	"github.com/gogpu/korin/gpu"
)

// TextureLoader decodes sprite images from a file system and uploads
// them as RGBA8 textures. It is safe for concurrent use.
type TextureLoader struct {
	device gpu.Device
	files  fs.FS

	// maxSize downsamples anything larger, 0 disables scaling.
	maxSize int

	mu    sync.Mutex
	cache map[string]gpu.Texture
}

// NewTextureLoader creates a loader reading from files. maxSize caps
// the longer texture edge; larger images are downscaled with
// Catmull-Rom resampling. Zero disables the cap.
func NewTextureLoader(device gpu.Device, files fs.FS, maxSize int) *TextureLoader {
	return &TextureLoader{
		device:  device,
		files:   files,
		maxSize: maxSize,
		cache:   make(map[string]gpu.Texture),
	}
}

// Load returns the texture for an image path, decoding and uploading
// it on first use.
func (l *TextureLoader) Load(name string) (gpu.Texture, error) {
	l.mu.Lock()
	if texture, ok := l.cache[name]; ok {
		l.mu.Unlock()
		return texture, nil
	}
	l.mu.Unlock()

	img, err := l.decode(name)
	if err != nil {
		return nil, err
	}
	rgba := l.convert(img)

	bounds := rgba.Bounds()
	texture := l.device.CreateTexture(&gpu.TextureDescriptor{
		Label: path.Base(name),
		Size: gpu.Extent3D{
			Width:              uint32(bounds.Dx()),
			Height:             uint32(bounds.Dy()),
			DepthOrArrayLayers: 1,
		},
		Format: gpu.TextureFormatRGBA8Unorm,
		Usage:  gpu.TextureUsageTextureBinding | gpu.TextureUsageCopyDst,
	})
	l.device.Queue().WriteTexture(texture, gpu.Origin3D{}, gpu.Extent3D{
		Width:              uint32(bounds.Dx()),
		Height:             uint32(bounds.Dy()),
		DepthOrArrayLayers: 1,
	}, rgba.Pix)

	l.mu.Lock()
	// Another goroutine may have raced the decode; keep the first.
	if existing, ok := l.cache[name]; ok {
		l.mu.Unlock()
		texture.Destroy()
		return existing, nil
	}
	l.cache[name] = texture
	l.mu.Unlock()

	korin.Logger().Debug("texture loaded",
		"path", name, "width", bounds.Dx(), "height", bounds.Dy())
	return texture, nil
}

// CachedCount returns how many textures the loader holds.
func (l *TextureLoader) CachedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cache)
}

// Close destroys every cached texture.
func (l *TextureLoader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for name, texture := range l.cache {
		texture.Destroy()
		delete(l.cache, name)
	}
}

func (l *TextureLoader) decode(name string) (image.Image, error) {
	data, err := fs.ReadFile(l.files, name)
	if err != nil {
		return nil, fmt.Errorf("asset: read %s: %w", name, err)
	}

	// The sprite archives carry BMP files without a registered magic,
	// so dispatch on the extension first.
	if strings.EqualFold(path.Ext(name), ".bmp") {
		img, err := bmp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("asset: decode bmp %s: %w", name, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("asset: decode %s: %w", name, err)
	}
	return img, nil
}

// convert normalizes to RGBA and applies the size cap.
func (l *TextureLoader) convert(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if l.maxSize > 0 && (width > l.maxSize || height > l.maxSize) {
		scale := float64(l.maxSize) / float64(width)
		if height > width {
			scale = float64(l.maxSize) / float64(height)
		}
		scaledWidth := int(float64(width) * scale)
		scaledHeight := int(float64(height) * scale)
		if scaledWidth < 1 {
			scaledWidth = 1
		}
		if scaledHeight < 1 {
			scaledHeight = 1
		}

		scaled := image.NewRGBA(image.Rect(0, 0, scaledWidth, scaledHeight))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Src, nil)
		return scaled
	}

	if rgba, ok := img.(*image.RGBA); ok && bounds.Min == (image.Point{}) {
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return rgba
}
