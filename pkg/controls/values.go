package controls

import (
	"strconv"

	"github.com/taigrr/gleam/pkg/math3d"
	"github.com/taigrr/gleam/pkg/shading"
)

// Values reads the selected object and the scene back into raw control
// values, undoing the slider scalings. shc reports the first shear factor.
func (p *Panel) Values() map[string]string {
	out := map[string]string{
		"background-color": shading.HexColor(p.scene.Background()),
	}
	for i := range p.scene.NumLights() {
		l, err := p.scene.Light(i)
		if err != nil {
			break
		}
		n := strconv.Itoa(i + 1)
		out["x"+n] = formatFloat(l.Position.X)
		out["y"+n] = formatFloat(l.Position.Y)
		out["z"+n] = formatFloat(l.Position.Z)
		out["c"+n] = shading.HexColor(l.Color)
	}

	obj := p.Object()
	if obj == nil {
		return out
	}
	st := obj.Snapshot()
	tr := st.Transform
	putAxes(out, "t", tr.Translate, TranslateDivisor)
	putAxes(out, "r", tr.Rotation.Axis, RotateDivisor)
	putAxes(out, "s", tr.Scale, ScaleDivisor)

	out["shc"] = formatFloat(tr.Shear.Factors[0])
	out["sh0"] = formatFloat(tr.Shear.Factors[0])
	out["sh1"] = formatFloat(tr.Shear.Factors[1])
	out["shx"] = tr.Shear.Axis.String()
	out["shading"] = st.Variant.String()
	out["ambient"] = formatFloat(st.Material.Ka * MaterialDivisor)
	out["diffuse"] = formatFloat(st.Material.Kd * MaterialDivisor)
	out["specular"] = formatFloat(st.Material.Ks * MaterialDivisor)
	out["shininess"] = formatFloat(st.Material.Shininess)
	return out
}

func putAxes(out map[string]string, prefix string, v math3d.Vec3, scale float64) {
	out[prefix+"x"] = formatFloat(v.X * scale)
	out[prefix+"y"] = formatFloat(v.Y * scale)
	out[prefix+"z"] = formatFloat(v.Z * scale)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
