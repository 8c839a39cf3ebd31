package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
}

func TestFlipVertical(t *testing.T) {
	// 1x2 image: bottom row red, top row green (GL order).
	pixels := []byte{
		255, 0, 0, 255,
		0, 255, 0, 255,
	}
	img, err := FlipVertical(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FlipVertical: %v", err)
	}
	if r, g, _, _ := img.At(0, 0).RGBA(); r != 0 || g == 0 {
		t.Errorf("top pixel should be green, got r=%d g=%d", r, g)
	}
	if r, g, _, _ := img.At(0, 1).RGBA(); r == 0 || g != 0 {
		t.Errorf("bottom pixel should be red, got r=%d g=%d", r, g)
	}
}

func TestFlipVerticalErrors(t *testing.T) {
	tests := []struct {
		name          string
		pixels        []byte
		width, height int
	}{
		{"short buffer", make([]byte, 7), 1, 2},
		{"zero width", nil, 0, 2},
		{"negative height", nil, 2, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FlipVertical(tt.pixels, tt.width, tt.height); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGenerateFilename(t *testing.T) {
	sc := NewScreenshotCapture("shots", "icosphere")
	sc.now = fixedClock

	want := filepath.Join("shots", "icosphere_2026-03-14_15-09-26.png")
	if got := sc.GenerateFilename(); got != want {
		t.Errorf("GenerateFilename = %q, want %q", got, want)
	}
	if got := sc.Filename("obj"); filepath.Ext(got) != ".obj" {
		t.Errorf("Filename(obj) = %q", got)
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	sc := NewScreenshotCapture(dir, "icosphere")
	sc.now = fixedClock

	pixels := make([]byte, 4*3*4)
	for i := range pixels {
		pixels[i] = byte(i)
	}

	path, err := sc.CaptureFromPixels(pixels, 4, 3)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open capture: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode capture: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Errorf("captured size %dx%d, want 4x3", b.Dx(), b.Dy())
	}
}
