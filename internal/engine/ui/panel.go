package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/icosphere/internal/viewer"
	"github.com/Faultbox/icosphere/pkg/icosphere"
)

// Actions are the buttons pressed during one Panel.Draw.
type Actions struct {
	Export       bool
	Screenshot   bool
	SaveSettings bool
	ResetView    bool
	FitView      bool
}

// Panel draws the sphere controls.
type Panel struct {
	// LastError is shown under the controls until the next success.
	LastError string
}

// Draw renders the controls for s and applies edits to it directly.
func (p *Panel) Draw(s *viewer.State) Actions {
	var act Actions

	if imgui.CollapsingHeaderTreeNodeFlagsV("Mesh", imgui.TreeNodeFlagsDefaultOpen) {
		level := int32(s.Level())
		imgui.SetNextItemWidth(-1)
		if imgui.SliderIntV("##Subdivisions", &level, 0, icosphere.MaxLevel, "subdivisions %d", imgui.SliderFlagsNone) {
			p.report(s.SetLevel(int(level)))
		}

		st := s.Stats()
		imgui.Text(fmt.Sprintf("Vertices:  %d", st.Vertices))
		imgui.Text(fmt.Sprintf("Triangles: %d", st.Triangles))
		imgui.TextDisabled(fmt.Sprintf("Buffer: %s", FormatBytes(st.Floats*4)))

		if next := st.Level + 1; next <= icosphere.MaxLevel {
			v, tri := icosphere.ExpectedCounts(next)
			imgui.TextDisabled(fmt.Sprintf("Next level: %d / %d", v, tri))
		}

		imgui.Checkbox("Wireframe", &s.Wireframe)
	}

	if imgui.CollapsingHeaderTreeNodeFlagsV("Shading", imgui.TreeNodeFlagsDefaultOpen) {
		imgui.ColorEdit3("Object", &s.ObjectColor)
		imgui.ColorEdit3("Light", &s.Light.Color)
		imgui.ColorEdit3("Background", &s.Background)

		az, el := s.Light.Angles()
		changed := imgui.SliderFloatV("Azimuth", &az, -180, 180, "%.0f deg", imgui.SliderFlagsNone)
		changed = imgui.SliderFloatV("Elevation", &el, -89, 89, "%.0f deg", imgui.SliderFlagsNone) || changed
		if changed {
			s.SetLightAngles(az, el)
		}
	}

	if imgui.CollapsingHeaderTreeNodeFlagsV("Motion", imgui.TreeNodeFlagsDefaultOpen) {
		imgui.Checkbox("Spin", &s.Spinning)
		imgui.SliderFloatV("Speed", &s.SpinSpeed, -3, 3, "%.2f rad/s", imgui.SliderFlagsNone)
		if imgui.Button("Reset View") {
			s.ResetSpin()
			act.ResetView = true
		}
		imgui.SameLine()
		act.FitView = imgui.Button("Fit View")
	}

	imgui.Separator()
	act.Export = imgui.ButtonV("Export OBJ...", imgui.NewVec2(-1, 0))
	act.Screenshot = imgui.ButtonV("Screenshot (F12)", imgui.NewVec2(-1, 0))
	act.SaveSettings = imgui.ButtonV("Save Settings", imgui.NewVec2(-1, 0))

	if p.LastError != "" {
		imgui.Spacing()
		imgui.TextColored(imgui.NewVec4(1, 0.4, 0.4, 1), p.LastError)
	}

	return act
}

func (p *Panel) report(err error) {
	if err != nil {
		p.LastError = err.Error()
		return
	}
	p.LastError = ""
}

// FormatBytes renders a byte count with a binary unit.
func FormatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMG"[exp])
}
