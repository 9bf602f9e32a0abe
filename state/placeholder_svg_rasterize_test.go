package state

import (
	"testing"

	imgutil "dkc/utils/images"
)

func TestDefaultPlaceholderRasterize(t *testing.T) {
	env := newLocalEnv()

	img, err := imgutil.RasterizeSVGToImage(env.PlaceholderArt, 0, 0)
	if err != nil {
		t.Fatalf("rasterize placeholder: %v", err)
	}
	if img.Bounds().Dx() <= 0 || img.Bounds().Dy() <= 0 {
		t.Fatalf("unexpected bounds: %v", img.Bounds())
	}

	// placeholder must stay in card proportions - taller than wide
	if img.Bounds().Dx() >= img.Bounds().Dy() {
		t.Fatalf("placeholder art is not portrait: %v", img.Bounds())
	}
}
