package scene

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/taigrr/gleam/pkg/math3d"
	"github.com/taigrr/gleam/pkg/models"
	"github.com/taigrr/gleam/pkg/shading"
	"github.com/taigrr/gleam/pkg/transform"
)

// EmbeddedTexture as an object's texture selects the image stored in its mesh file.
const EmbeddedTexture = "embedded"

// Color is an RGB triple written as "#RRGGBB" in manifests.
type Color math3d.Vec3

func (c *Color) UnmarshalText(b []byte) error {
	v, err := shading.ParseHexColor(string(b))
	if err != nil {
		return err
	}
	*c = Color(v)
	return nil
}

// Manifest is the startup description of a scene.
type Manifest struct {
	Background *Color       `toml:"background"`
	Camera     CameraSpec   `toml:"camera"`
	Lights     []LightSpec  `toml:"lights"`
	Objects    []ObjectSpec `toml:"objects"`
}

// CameraSpec positions the viewer. Zero values select defaults.
type CameraSpec struct {
	Position   [3]float64  `toml:"position"`
	Target     *[3]float64 `toml:"target"`
	FOVDegrees float64     `toml:"fov_degrees"`
	Near       float64     `toml:"near"`
	Far        float64     `toml:"far"`
}

type LightSpec struct {
	Position [3]float64 `toml:"position"`
	Color    Color      `toml:"color"`
}

// ObjectSpec describes one object. Pointer fields are optional.
type ObjectSpec struct {
	Name string `toml:"name"`
	// Mesh is a primitive name (cube, plane, sphere) or a file path
	// relative to the manifest.
	Mesh           string      `toml:"mesh"`
	Color          *Color      `toml:"color"`
	AuthoringScale *[3]float64 `toml:"authoring_scale"`
	Shading        string      `toml:"shading"`
	Translate      [3]float64  `toml:"translate"`
	RotationAxis   *[3]float64 `toml:"rotation_axis"`
	RotationAngle  float64     `toml:"rotation_angle"`
	Scale          *[3]float64 `toml:"scale"`
	ShearFactors   [2]float64  `toml:"shear_factors"`
	ShearAxis      string      `toml:"shear_axis"`
	Ka             *float64    `toml:"ka"`
	Kd             *float64    `toml:"kd"`
	Ks             *float64    `toml:"ks"`
	Shininess      *float64    `toml:"shininess"`
	Texture        string      `toml:"texture"`
}

// DefaultLights are used when a manifest declares none.
func DefaultLights() []shading.Light {
	return []shading.Light{
		{Position: math3d.V3(0, 5, 0), Color: math3d.V3(1, 1, 1)},
		{Position: math3d.V3(-5, 0, 0), Color: math3d.V3(1, 0.5, 0.5)},
		{Position: math3d.V3(5, 0, 0), Color: math3d.V3(0.5, 0.5, 1)},
	}
}

// LoadManifest reads and parses a TOML manifest file.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	return DecodeManifest(f)
}

// ParseManifest parses a TOML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	return DecodeManifest(bytes.NewReader(data))
}

// DecodeManifest reads a TOML manifest from r. Unknown keys are rejected.
func DecodeManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks fields that cannot be defaulted.
func (m *Manifest) Validate() error {
	if len(m.Objects) == 0 {
		return ErrNoObjects
	}
	for i, o := range m.Objects {
		if o.Mesh == "" {
			return fmt.Errorf("object %d (%q): mesh is required", i, o.Name)
		}
		if o.Shading != "" {
			if _, err := shading.ParseVariant(o.Shading); err != nil {
				return fmt.Errorf("object %d (%q): %w", i, o.Name, err)
			}
		}
		if o.ShearAxis != "" {
			if _, err := transform.ParseShearAxis(o.ShearAxis); err != nil {
				return fmt.Errorf("object %d (%q): %w", i, o.Name, err)
			}
		}
	}
	return nil
}

// BackgroundColor returns the configured background or DefaultBackground.
func (m *Manifest) BackgroundColor() math3d.Vec3 {
	if m.Background == nil {
		return DefaultBackground
	}
	return math3d.Vec3(*m.Background)
}

// Eye returns the camera position.
func (c CameraSpec) Eye() math3d.Vec3 {
	return vec(c.Position)
}

// LookAt returns the camera target, looking down -Z by default.
func (c CameraSpec) LookAt() math3d.Vec3 {
	if c.Target == nil {
		return c.Eye().Add(math3d.V3(0, 0, -1))
	}
	return vec(*c.Target)
}

// Lens returns the projection parameters with defaults filled in.
func (c CameraSpec) Lens() transform.Lens {
	l := transform.DefaultLens()
	if c.FOVDegrees > 0 {
		l.FOV = c.FOVDegrees * math.Pi / 180
	}
	if c.Near > 0 {
		l.Near = c.Near
	}
	if c.Far > 0 {
		l.Far = c.Far
	}
	return l
}

// Loaders are the collaborators Build uses to resolve meshes and textures.
type Loaders struct {
	Mesh      func(path string) (*models.Mesh, error)
	Primitive func(name string, color math3d.Vec3) (*models.Mesh, error)
	Texture   func(path string) (shading.Sampler, error)
	Image     func(img image.Image) shading.Sampler
}

// DefaultLoaders resolve meshes through the models package. Texture
// loaders are left to the caller.
func DefaultLoaders() Loaders {
	return Loaders{Mesh: models.Load, Primitive: models.Primitive}
}

var defaultObjectColor = math3d.V3(0.8, 0.8, 0.8)

// Build constructs a scene from m. Paths are resolved against dir.
//
// A mesh or texture that fails to load does not abort the build: the
// object is entered without it and the failure is joined into the
// returned error. The scene is nil only when m itself is invalid.
func Build(m *Manifest, dir string, ld Loaders) (*Scene, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	var errs []error
	objects := make([]*Object, 0, len(m.Objects))
	for i, spec := range m.Objects {
		name := spec.Name
		if name == "" {
			name = fmt.Sprintf("object%d", i+1)
		}
		st, source, err := buildObject(spec, dir, ld)
		if err != nil {
			errs = append(errs, fmt.Errorf("object %q: %w", name, err))
		}
		objects = append(objects, NewObject(name, source, st))
	}

	lights := DefaultLights()
	if len(m.Lights) > 0 {
		lights = make([]shading.Light, len(m.Lights))
		for i, l := range m.Lights {
			lights[i] = shading.Light{Position: vec(l.Position), Color: math3d.Vec3(l.Color)}
		}
	}

	return New(objects, lights, m.BackgroundColor()), errors.Join(errs...)
}

// MeshSource returns the key under which an object's mesh is loaded and
// reloaded: the primitive name, or the cleaned path resolved against dir.
func MeshSource(mesh, dir string) string {
	if isPrimitive(mesh) {
		return mesh
	}
	if filepath.IsAbs(mesh) {
		return filepath.Clean(mesh)
	}
	return filepath.Join(dir, mesh)
}

func isPrimitive(name string) bool {
	for _, p := range models.PrimitiveNames() {
		if p == name {
			return true
		}
	}
	return false
}

func buildObject(spec ObjectSpec, dir string, ld Loaders) (State, string, error) {
	st := DefaultState()
	tf := &st.Transform
	tf.Translate = vec(spec.Translate)
	tf.Rotation.Angle = spec.RotationAngle
	if spec.RotationAxis != nil {
		tf.Rotation.Axis = vec(*spec.RotationAxis)
	}
	if spec.Scale != nil {
		tf.Scale = vec(*spec.Scale)
	}
	tf.Shear.Factors = spec.ShearFactors
	if spec.ShearAxis != "" {
		tf.Shear.Axis, _ = transform.ParseShearAxis(spec.ShearAxis)
	}
	if spec.AuthoringScale != nil {
		st.AuthoringScale = vec(*spec.AuthoringScale)
	}
	if spec.Shading != "" {
		st.Variant, _ = shading.ParseVariant(spec.Shading)
	}
	setIf(&st.Material.Ka, spec.Ka)
	setIf(&st.Material.Kd, spec.Kd)
	setIf(&st.Material.Ks, spec.Ks)
	setIf(&st.Material.Shininess, spec.Shininess)

	color := defaultObjectColor
	if spec.Color != nil {
		color = math3d.Vec3(*spec.Color)
	}

	source := MeshSource(spec.Mesh, dir)
	var mesh *models.Mesh
	var err error
	if isPrimitive(spec.Mesh) {
		mesh, err = ld.Primitive(spec.Mesh, color)
	} else {
		mesh, err = ld.Mesh(source)
	}
	if err != nil {
		return st, source, err
	}
	st.Mesh = mesh

	switch spec.Texture {
	case "":
	case EmbeddedTexture:
		if mesh.Image == nil || ld.Image == nil {
			return st, source, fmt.Errorf("mesh %q has no usable embedded texture", spec.Mesh)
		}
		st.Texture = ld.Image(mesh.Image)
	default:
		if ld.Texture == nil {
			return st, source, fmt.Errorf("texture %q: no texture loader", spec.Texture)
		}
		path := spec.Texture
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		tex, err := ld.Texture(path)
		if err != nil {
			return st, source, fmt.Errorf("texture: %w", err)
		}
		st.Texture = tex
	}
	return st, source, nil
}

func setIf(dst, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func vec(a [3]float64) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}
