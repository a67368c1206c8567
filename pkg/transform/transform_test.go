package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/gleam/pkg/math3d"
)

func sample() Transform {
	return Transform{
		Translate: math3d.V3(1, -2, 3),
		Rotation:  Rotation{Angle: 0.8, Axis: math3d.V3(1, 1, 0).Normalize()},
		Scale:     math3d.V3(2, 0.5, 1.5),
		Shear:     Shear{Factors: [2]float64{0.3, -0.6}, Axis: ShearY},
	}
}

func TestTranslateDoesNotAffectLinearBlock(t *testing.T) {
	translates := []math3d.Vec3{
		math3d.V3(0, 0, 0),
		math3d.V3(10, -4, 2),
		math3d.V3(-0.5, 100, -50),
	}

	base := sample()
	want := ComposeModelMatrix(base).Upper3()
	for _, tr := range translates {
		tf := base
		tf.Translate = tr
		m := ComposeModelMatrix(tf)
		if !m.Upper3().ApproxEqual(want, 1e-12) {
			t.Errorf("translate %v changed the 3x3 block: %v, want %v", tr, m.Upper3(), want)
		}
		if m.Translation() != tr {
			t.Errorf("translation column = %v, want %v", m.Translation(), tr)
		}
	}
}

func TestCompositionOrder(t *testing.T) {
	tf := sample()
	p := math3d.V3(0.3, -1, 2)

	// Apply each stage by hand: scale, shear, rotate, translate.
	step := p.Mul(tf.Scale)
	step = ShearMatrix(tf.Shear).MulVec3(step)
	step = math3d.Rotate(tf.Rotation.Axis, tf.Rotation.Angle).MulVec3(step)
	step = step.Add(tf.Translate)

	got := ComposeModelMatrix(tf).MulVec3(p)
	if !got.ApproxEqual(step, 1e-9) {
		t.Errorf("composed = %v, want %v", got, step)
	}

	// Swapping shear and scale must give a different result for this input.
	swapped := math3d.Translate(tf.Translate).
		Mul(math3d.Rotate(tf.Rotation.Axis, tf.Rotation.Angle)).
		Mul(math3d.Scale(tf.Scale)).
		Mul(ShearMatrix(tf.Shear)).
		MulVec3(p)
	if swapped.ApproxEqual(got, 1e-6) {
		t.Error("composition should depend on shear/scale order")
	}
}

func TestShearOneHot(t *testing.T) {
	for _, axis := range []ShearAxis{ShearX, ShearY, ShearZ} {
		t.Run(axis.String(), func(t *testing.T) {
			m := ShearMatrix(Shear{Factors: [2]float64{0.4, 0.9}, Axis: axis})
			id := math3d.Identity()
			offDiagonal := 0
			for row := range 4 {
				for col := range 4 {
					if m.Get(row, col) != id.Get(row, col) {
						if row == col {
							t.Errorf("diagonal (%d,%d) changed", row, col)
						}
						if row != int(axis) {
							t.Errorf("entry (%d,%d) outside axis row %d", row, col, axis)
						}
						offDiagonal++
					}
				}
			}
			if offDiagonal != 2 {
				t.Errorf("got %d changed entries, want 2", offDiagonal)
			}

			zero := ShearMatrix(Shear{Axis: axis})
			if zero != id {
				t.Errorf("zero factors should give identity, got %v", zero)
			}

			hot := axis.OneHot()
			if hot.X+hot.Y+hot.Z != 1 || hot.Component(int(axis)) != 1 {
				t.Errorf("OneHot = %v", hot)
			}
		})
	}
}

func TestParseShearAxis(t *testing.T) {
	for in, want := range map[string]ShearAxis{"x": ShearX, "Y": ShearY, " z ": ShearZ} {
		got, err := ParseShearAxis(in)
		if err != nil || got != want {
			t.Errorf("ParseShearAxis(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseShearAxis("w"); !errors.Is(err, ErrUnknownShearAxis) {
		t.Errorf("expected ErrUnknownShearAxis, got %v", err)
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	tf := Identity()
	tf.Scale = math3d.V3(4, 1, 1)
	model := ComposeModelMatrix(tf)
	nm := NormalMatrix(model)

	// A 45° surface in XY: tangent (1,-1,0) with normal (1,1,0).
	tangent := model.Upper3().MulVec3(math3d.V3(1, -1, 0))
	normal := nm.MulVec3(math3d.V3(1, 1, 0))
	if d := tangent.Dot(normal); math.Abs(d) > 1e-9 {
		t.Errorf("transformed normal not perpendicular to tangent: dot = %v", d)
	}

	// The plain upper 3x3 would break perpendicularity.
	naive := model.Upper3().MulVec3(math3d.V3(1, 1, 0))
	if math.Abs(tangent.Dot(naive)) < 1e-3 {
		t.Error("expected naive normal transform to be wrong under non-uniform scale")
	}
}

func TestNormalMatrixSingular(t *testing.T) {
	tf := Identity()
	tf.Scale = math3d.V3(1, 0, 1)
	if got := NormalMatrix(ComposeModelMatrix(tf)); got != math3d.Identity3() {
		t.Errorf("singular normal matrix = %v, want identity", got)
	}
}

func TestAuthoringScaleIsReentrant(t *testing.T) {
	tf := sample()
	k := math3d.V3(0.1, 0.1, 0.1)

	first := ComposeModelMatrix(tf.WithAuthoringScale(k))
	for range 5 {
		_ = ComposeModelMatrix(tf.WithAuthoringScale(k))
	}
	again := ComposeModelMatrix(tf.WithAuthoringScale(k))
	if first != again {
		t.Error("authoring scale accumulated across calls")
	}
	if tf.Scale != sample().Scale || tf.Translate != sample().Translate {
		t.Error("authoring scale mutated the stored transform")
	}
	if first.Translation() != tf.Translate {
		t.Errorf("translation changed to %v", first.Translation())
	}
}

func TestPerspectiveAspect(t *testing.T) {
	lens := DefaultLens()
	wide := lens.Projection(2)
	square := lens.Projection(1)
	if math.Abs(wide.Get(0, 0)*2-square.Get(0, 0)) > 1e-12 {
		t.Errorf("x scale should halve when aspect doubles: %v vs %v", wide.Get(0, 0), square.Get(0, 0))
	}
	if lens.Projection(0) != square {
		t.Error("non-positive aspect should fall back to 1")
	}
}
