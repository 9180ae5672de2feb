package imgprep

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 10 {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: 200, A: 255})
		}
	}
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestShrinkSmallImageUnchanged(t *testing.T) {
	data := encodePNG(t, 100, 80)
	out := Shrink(data, 1600)
	if !bytes.Equal(out, data) {
		t.Fatal("small image should pass through unchanged")
	}
}

func TestShrinkLargeImage(t *testing.T) {
	data := encodePNG(t, 400, 200)
	out := Shrink(data, 200)
	img, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output not decodable: %v", err)
	}
	b := img.Bounds()
	if b.Dx() > 200 || b.Dy() > 200 {
		t.Fatalf("not shrunk: %dx%d", b.Dx(), b.Dy())
	}
	// aspect ratio preserved: 400x200 fit into 200 -> 200x100
	if b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("unexpected dimensions %dx%d", b.Dx(), b.Dy())
	}
}

func TestShrinkNonImagePassthrough(t *testing.T) {
	data := []byte("%PDF-1.4 not an image")
	out := Shrink(data, 100)
	if !bytes.Equal(out, data) {
		t.Fatal("undecodable input should be returned verbatim")
	}
}
