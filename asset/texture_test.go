package asset

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"golang.org/x/image/bmp"

	"github.com/gogpu/korin/gpu/headless"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x), A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func encodeBMP(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}
	return buf.Bytes()
}

func newTestLoader(t *testing.T, files fstest.MapFS, maxSize int) *TextureLoader {
	t.Helper()

	device := headless.New()
	t.Cleanup(device.Destroy)

	loader := NewTextureLoader(device, files, maxSize)
	t.Cleanup(loader.Close)
	return loader
}

func TestTextureLoaderCachesByPath(t *testing.T) {
	files := fstest.MapFS{
		"sprites/cursor.png": {Data: encodePNG(t, 8, 8)},
	}
	loader := newTestLoader(t, files, 0)

	first, err := loader.Load("sprites/cursor.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := loader.Load("sprites/cursor.png")
	if err != nil {
		t.Fatalf("Load cached: %v", err)
	}
	if first != second {
		t.Error("second load did not hit the cache")
	}
	if loader.CachedCount() != 1 {
		t.Errorf("cached count = %d, want 1", loader.CachedCount())
	}
}

func TestTextureLoaderDecodesBMP(t *testing.T) {
	files := fstest.MapFS{
		"sprites/face.bmp": {Data: encodeBMP(t, 4, 6)},
	}
	loader := newTestLoader(t, files, 0)

	texture, err := loader.Load("sprites/face.bmp")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	size := texture.Size()
	if size.Width != 4 || size.Height != 6 {
		t.Errorf("texture size = %dx%d, want 4x6", size.Width, size.Height)
	}
}

func TestTextureLoaderDownscalesLargeImages(t *testing.T) {
	files := fstest.MapFS{
		"sprites/big.png": {Data: encodePNG(t, 64, 32)},
	}
	loader := newTestLoader(t, files, 16)

	texture, err := loader.Load("sprites/big.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	size := texture.Size()
	if size.Width != 16 || size.Height != 8 {
		t.Errorf("texture size = %dx%d, want downscaled to 16x8", size.Width, size.Height)
	}
}

func TestTextureLoaderMissingFile(t *testing.T) {
	loader := newTestLoader(t, fstest.MapFS{}, 0)

	if _, err := loader.Load("sprites/missing.png"); err == nil {
		t.Error("missing file loaded without error")
	}
}
