// gleam - Terminal Scene Renderer
// Render a lit, animated 3D scene in your terminal.
//
// The scene is described by a TOML manifest. Without one, a built-in scene
// of primitives is shown.
//
// Controls:
//
//	Tab / 1-9     - Select object
//	F / G / P     - Flat, Gouraud or Phong shading
//	Arrows        - Translate selected object (X/Y)
//	[ / ]         - Translate selected object (Z)
//	X / Y / Z     - Rotate about the X, Y or Z axis
//	, / .         - Shrink / grow
//	H             - Cycle shear axis
//	J / K         - Decrease / increase shear
//	A / D / S / N - Raise ambient, diffuse, specular, shininess (shift lowers)
//	+/- / Scroll  - Dolly camera
//	R             - Reset camera
//	?             - Toggle HUD overlay
//	Esc           - Quit
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/taigrr/gleam/pkg/assets"
	"github.com/taigrr/gleam/pkg/core"
	"github.com/taigrr/gleam/pkg/engine"
	"github.com/taigrr/gleam/pkg/render"
	"github.com/taigrr/gleam/pkg/scene"
	"github.com/taigrr/gleam/pkg/shading"
)

//go:embed default_scene.toml
var defaultScene []byte

var (
	targetFPS    = flag.Int("fps", 30, "Target FPS")
	bgColor      = flag.String("bg", "", "Background color override (#RRGGBB)")
	logFile      = flag.String("log", "", "Write logs to this file")
	logLevel     = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	snapshotPath = flag.String("snapshot", "", "Render to this PNG file instead of the terminal")
	frames       = flag.Int("frames", 1, "Frames to advance before a snapshot")
	width        = flag.Int("width", 320, "Snapshot width in pixels")
	height       = flag.Int("height", 180, "Snapshot height in pixels")
	watch        = flag.Bool("watch", false, "Reload mesh files when they change on disk")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gleam - Terminal Scene Renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: gleam [options] [scene.toml]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		for _, b := range bindings {
			if b.label == "" {
				continue
			}
			fmt.Fprintf(os.Stderr, "  %-12s - %s\n", b.label, b.help)
		}
		fmt.Fprintf(os.Stderr, "  %-12s - %s\n", "Esc", "Quit")
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(manifestPath string) error {
	if err := core.SetLogLevel(*logLevel); err != nil {
		return err
	}
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		core.SetLogOutput(f)
	} else if *snapshotPath == "" {
		// The terminal belongs to the renderer.
		core.SetLogOutput(io.Discard)
	}

	m, dir, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}
	sc, err := scene.Build(m, dir, loaders())
	if sc == nil {
		return err
	}
	if err != nil {
		// Objects that failed to load stay in the scene without a mesh.
		core.LogWarn("scene loaded with errors: %v", err)
	}
	if *bgColor != "" {
		bg, err := shading.ParseHexColor(*bgColor)
		if err != nil {
			return fmt.Errorf("-bg: %w", err)
		}
		sc.SetBackground(bg)
	}

	cam := newCamera(m.Camera)

	if *snapshotPath != "" {
		return snapshot(sc, cam, m.Camera)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var reloads <-chan assets.Reload
	if *watch {
		w, err := assets.NewWatcher(nil)
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		if err := w.WatchScene(sc); err != nil {
			core.LogWarn("some meshes are not watched: %v", err)
		}
		reloads = w.Reloads()
		go func() {
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				core.LogError("mesh watcher stopped: %v", err)
			}
		}()
	}

	v, err := newViewer(sc, cam, m.Camera.Lens(), *targetFPS)
	if err != nil {
		return err
	}
	v.title = sceneTitle(manifestPath)
	v.reloads = reloads
	return v.Run(ctx)
}

// loadManifest reads the manifest at path, or the built-in scene when path
// is empty. The returned directory resolves relative mesh paths.
func loadManifest(path string) (*scene.Manifest, string, error) {
	if path == "" {
		m, err := scene.ParseManifest(defaultScene)
		if err != nil {
			return nil, "", fmt.Errorf("built-in scene: %w", err)
		}
		return m, ".", nil
	}
	m, err := scene.LoadManifest(path)
	if err != nil {
		return nil, "", err
	}
	return m, filepath.Dir(path), nil
}

func loaders() scene.Loaders {
	ld := scene.DefaultLoaders()
	ld.Texture = func(path string) (shading.Sampler, error) {
		tex, err := render.LoadTexture(path)
		if err != nil {
			// A typed nil would read as a present texture.
			return nil, err
		}
		return tex, nil
	}
	ld.Image = func(img image.Image) shading.Sampler {
		return render.TextureFromImage(img)
	}
	return ld
}

func newCamera(spec scene.CameraSpec) *render.Camera {
	cam := render.NewCamera()
	cam.SetPosition(spec.Eye())
	cam.LookAt(spec.LookAt())
	return cam
}

// snapshot renders the scene offscreen and writes a PNG.
func snapshot(sc *scene.Scene, cam *render.Camera, spec scene.CameraSpec) error {
	if *width <= 0 || *height <= 0 {
		return fmt.Errorf("invalid snapshot size %dx%d", *width, *height)
	}
	fb := render.NewFramebuffer(*width, *height)
	loop, err := engine.NewLoop(sc, render.NewSoftware(fb), cam, spec.Lens())
	if err != nil {
		return err
	}

	dt := 1 / float64(max(1, *targetFPS))
	for range max(1, *frames) {
		loop.Tick(dt)
	}
	if err := fb.SavePNG(*snapshotPath); err != nil {
		return err
	}
	core.LogInfo("wrote %s after %d frames", *snapshotPath, loop.Frames())
	return nil
}

func sceneTitle(path string) string {
	if path == "" {
		return "built-in scene"
	}
	return filepath.Base(path)
}
