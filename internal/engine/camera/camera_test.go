package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/icosphere/pkg/icosphere"
	"github.com/Faultbox/icosphere/pkg/math"
)

func TestDefaultPosition(t *testing.T) {
	c := NewOrbitCamera()
	pos := c.Position()
	if !pos.ApproxEqual(math.Vec3{Z: 7}, 1e-5) {
		t.Errorf("default position = %+v, want (0, 0, 7)", pos)
	}

	// The origin lands in front of the camera on the view axis.
	view := c.ViewMatrix()
	got := view.TransformVec3(math.Vec3{})
	if !got.ApproxEqual(math.Vec3{Z: -7}, 1e-5) {
		t.Errorf("origin in view space = %+v, want (0, 0, -7)", got)
	}
}

func TestHandleDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 10000)
	if c.RotationX != c.MaxPitch {
		t.Errorf("pitch = %v, want clamp to %v", c.RotationX, c.MaxPitch)
	}
	c.HandleDrag(0, -20000)
	if c.RotationX != c.MinPitch {
		t.Errorf("pitch = %v, want clamp to %v", c.RotationX, c.MinPitch)
	}
}

func TestHandleDragYaw(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(-100, 0)
	if math32.Abs(c.RotationY-0.5) > 1e-6 {
		t.Errorf("yaw = %v, want 0.5", c.RotationY)
	}
	// Distance to center is preserved while orbiting.
	if d := c.Position().Length(); math32.Abs(d-c.Distance) > 1e-4 {
		t.Errorf("distance after orbit = %v, want %v", d, c.Distance)
	}
}

func TestHandleZoom(t *testing.T) {
	tests := []struct {
		name  string
		delta float32
		want  float32
	}{
		{"zoom in", 1, 6.3},
		{"zoom out", -1, 7.7},
		{"clamp near", 100, 1.5},
		{"clamp far", -1000, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrbitCamera()
			c.HandleZoom(tt.delta)
			if math32.Abs(c.Distance-tt.want) > 1e-4 {
				t.Errorf("distance = %v, want %v", c.Distance, tt.want)
			}
		})
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1})

	if c.Center != (math.Vec3{}) {
		t.Errorf("center = %+v, want origin", c.Center)
	}
	want := math32.Sqrt(3) / math32.Sin(math.Radians(22.5)) * 1.1
	if math32.Abs(c.Distance-want) > 1e-4 {
		t.Errorf("distance = %v, want %v", c.Distance, want)
	}
}

func TestFitToSphereBounds(t *testing.T) {
	mesh, err := icosphere.Subdivide(icosphere.Icosahedron(), 2)
	if err != nil {
		t.Fatalf("Subdivide: %v", err)
	}
	b := mesh.Bounds()

	c := NewOrbitCamera()
	c.RotationY = 1
	c.FitToBounds(b.Min, b.Max)

	if !c.Center.ApproxEqual(math.Vec3{}, 1e-5) {
		t.Errorf("center = %+v, want origin", c.Center)
	}
	// The whole unit sphere fits in the vertical field of view.
	if reach := c.Distance * math32.Sin(math.Radians(c.FOVDegrees)/2); reach < 1 {
		t.Errorf("distance %v leaves the sphere clipped (reach %v)", c.Distance, reach)
	}
	if c.RotationY != 1 {
		t.Errorf("fitting should keep orientation, got yaw %v", c.RotationY)
	}
}

func TestFitToBoundsEmpty(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds(math.Vec3{X: 2}, math.Vec3{X: 2})
	if c.Distance != 7 {
		t.Errorf("empty bounds should keep distance, got %v", c.Distance)
	}
}

func TestReset(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(40, 40)
	c.Reset(3)
	if c.RotationX != 0 || c.RotationY != 0 || c.Distance != 3 {
		t.Errorf("reset camera = %+v", c)
	}
}
