// Package imgprep normalizes uploaded evidence images before they are
// sent to the analysis service, so oversized camera photos do not blow up
// outbound request payloads.
package imgprep

import (
	"bytes"
	"image/jpeg"

	"github.com/disintegration/imaging"
)

// MaxDimension is the longest image side after shrinking. Classification
// and OCR models downsample anyway, so nothing is lost.
const MaxDimension = 1600

// Shrink downscales an image so its longest side is at most maxDim and
// re-encodes it as JPEG. Input that cannot be decoded as an image (PDFs,
// corrupt files) is returned unchanged so the analysis service can still
// reject it with its own diagnostics.
func Shrink(data []byte, maxDim int) []byte {
	if maxDim <= 0 {
		maxDim = MaxDimension
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data
	}
	b := img.Bounds()
	if b.Dx() <= maxDim && b.Dy() <= maxDim {
		return data
	}
	resized := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	out := &bytes.Buffer{}
	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: 90}); err != nil {
		return data
	}
	return out.Bytes()
}
