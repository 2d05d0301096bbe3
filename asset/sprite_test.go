package asset

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestShipDimensions(t *testing.T) {
	s := Ship()
	if s.Width() != 16 || s.Height() != 16 {
		t.Errorf("ship size: got %dx%d, want 16x16", s.Width(), s.Height())
	}
	// Nose pixel is opaque, corner is transparent
	if a := s.Image.RGBAAt(7, 0).A; a != 255 {
		t.Errorf("nose alpha: got %d, want 255", a)
	}
	if a := s.Image.RGBAAt(0, 0).A; a != 0 {
		t.Errorf("corner alpha: got %d, want 0", a)
	}
}

func TestFromRowsRejectsRagged(t *testing.T) {
	_, err := FromRows("bad", []string{"ab", "a"}, nil)
	if err == nil {
		t.Error("expected error for ragged rows")
	}
	if _, err := FromRows("empty", nil, nil); err == nil {
		t.Error("expected error for no rows")
	}
}

func TestLoadPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dot.png")

	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(2, 1, color.NRGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Width() != 3 || s.Height() != 2 {
		t.Errorf("size: got %dx%d, want 3x2", s.Width(), s.Height())
	}
	if got := s.Image.RGBAAt(2, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel: got %+v", got)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected error for missing file")
	}
}
