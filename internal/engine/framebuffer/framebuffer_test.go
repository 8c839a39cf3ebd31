package framebuffer

import "testing"

func TestClampSize(t *testing.T) {
	tests := []struct {
		w, h         int32
		wantW, wantH int32
	}{
		{640, 480, 640, 480},
		{0, 480, 1, 480},
		{640, -3, 640, 1},
		{0, 0, 1, 1},
	}
	for _, tt := range tests {
		w, h := clampSize(tt.w, tt.h)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("clampSize(%d, %d) = %d, %d, want %d, %d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestAspect(t *testing.T) {
	fb := &Framebuffer{width: 800, height: 400}
	if got := fb.Aspect(); got != 2 {
		t.Errorf("Aspect = %v, want 2", got)
	}
}
