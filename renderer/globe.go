package renderer

import (
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/festive/camera"
	"github.com/pthm-cable/festive/rotate"
	"github.com/pthm-cable/festive/surface"
)

// Atmosphere shader: a rim glow on the back faces of a slightly larger
// sphere, added over the globe.
const atmosphereVS = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matNormal;
out vec3 fragNormal;
void main() {
    fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const atmosphereFS = `#version 330
in vec3 fragNormal;
out vec4 finalColor;
void main() {
    if (gl_FrontFacing) discard;
    float intensity = pow(0.7 - dot(fragNormal, vec3(0.0, 0.0, 1.0)), 2.0);
    finalColor = vec4(0.3, 0.6, 1.0, 1.0) * intensity;
}
`

// GlobeConfig describes the 3D globe scene.
type GlobeConfig struct {
	Radius          float64
	Segments        int
	FOV             float64
	CameraZ         float64
	AtmosphereScale float64
	// Texture is an equirectangular image; empty or unreadable falls back
	// to a procedural ocean-and-land texture.
	Texture     string
	Ocean, Land surface.Color
}

// model wraps a loaded raylib model as a rotate.Orientable.
type model struct {
	m rl.Model
}

func (o *model) SetOrientation(pitch, yaw float64) {
	o.m.Transform = rl.MatrixRotateXYZ(rl.Vector3{X: float32(pitch), Y: float32(yaw)})
}

// GlobeScene owns the globe's GPU resources: the textured core sphere, the
// atmosphere shell and its shader, a camera and an offscreen target.
type GlobeScene struct {
	cfg   GlobeConfig
	persp *camera.Perspective
	view  camera.Viewport
	cam   rl.Camera3D

	core, shell *model
	texture     rl.Texture2D
	atmosphere  rl.Shader
	target      rl.RenderTexture2D

	disposed bool
}

// NewGlobeScene builds the scene for a w x h viewport. It fails with
// surface.ErrUnavailable if no window (and so no GL context) exists.
func NewGlobeScene(cfg GlobeConfig, w, h, dpr float64) (*GlobeScene, error) {
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("3D backend: %w", surface.ErrUnavailable)
	}
	view := camera.NewViewport(w, h, dpr)
	if !view.Valid() {
		return nil, fmt.Errorf("globe viewport %gx%g: %w", w, h, surface.ErrNoTarget)
	}

	g := &GlobeScene{
		cfg:   cfg,
		view:  view,
		persp: camera.NewPerspective(cfg.FOV, w, h, 0.1, 1000, cfg.CameraZ),
	}
	g.cam = rl.Camera3D{
		Position:   rl.Vector3{Z: float32(cfg.CameraZ)},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{Y: 1},
		Fovy:       float32(cfg.FOV),
		Projection: rl.CameraPerspective,
	}

	g.texture = loadGlobeTexture(cfg)

	segments := cfg.Segments
	if segments < 8 {
		segments = 8
	}
	g.core = &model{m: rl.LoadModelFromMesh(rl.GenMeshSphere(float32(cfg.Radius), segments, segments))}
	rl.SetMaterialTexture(&g.core.m.GetMaterials()[0], rl.MapDiffuse, g.texture)

	shellRadius := cfg.Radius * cfg.AtmosphereScale
	g.shell = &model{m: rl.LoadModelFromMesh(rl.GenMeshSphere(float32(shellRadius), segments, segments))}
	g.atmosphere = rl.LoadShaderFromMemory(atmosphereVS, atmosphereFS)
	g.shell.m.GetMaterials()[0].Shader = g.atmosphere

	g.loadTarget()
	return g, nil
}

// GlobeFactory adapts NewGlobeScene to rotate.SceneFactory. The built scene
// is reported through sink so the host can composite it.
func GlobeFactory(cfg GlobeConfig, view camera.Viewport, sink func(*GlobeScene)) rotate.SceneFactory {
	return func() (rotate.Scene, error) {
		g, err := NewGlobeScene(cfg, view.W, view.H, view.DPR)
		if err != nil {
			return nil, err
		}
		if sink != nil {
			sink(g)
		}
		return g, nil
	}
}

func loadGlobeTexture(cfg GlobeConfig) rl.Texture2D {
	if cfg.Texture != "" {
		if _, err := os.Stat(cfg.Texture); err == nil {
			tex := rl.LoadTexture(cfg.Texture)
			if tex.ID != 0 {
				rl.SetTextureFilter(tex, rl.FilterBilinear)
				return tex
			}
		}
		slog.Warn("could not load earth texture, using fallback", "path", cfg.Texture)
	}
	img := fallbackEarthImage(512, 256, cfg.Ocean, cfg.Land)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	return tex
}

// fallbackEarthImage paints an ocean with three rough continents.
func fallbackEarthImage(w, h int, ocean, land surface.Color) *rl.Image {
	img := rl.GenImageColor(w, h, rgba(ocean, 1))
	sx := float64(w) / 512
	sy := float64(h) / 256
	for _, blob := range landBlobs {
		rl.ImageDrawCircle(img, int32(blob.x*sx), int32(blob.y*sy), int32(blob.r*sy), rgba(land, 1))
	}
	return img
}

// landBlobs are overlapping circles approximating three continents on a
// 512x256 map.
var landBlobs = []struct{ x, y, r float64 }{
	{216, 100, 36}, {256, 96, 40}, {296, 104, 34},
	{130, 140, 40}, {160, 158, 42},
	{360, 144, 36}, {396, 136, 32},
}

func (g *GlobeScene) loadTarget() {
	pw, ph := g.view.Physical()
	g.target = rl.LoadRenderTexture(int32(pw), int32(ph))
}

// Meshes returns the core sphere, then the atmosphere shell.
func (g *GlobeScene) Meshes() []rotate.Orientable {
	return []rotate.Orientable{g.core, g.shell}
}

// Render draws the scene into the offscreen target.
func (g *GlobeScene) Render() {
	if g.disposed {
		return
	}
	rl.BeginTextureMode(g.target)
	rl.ClearBackground(rl.Blank)
	rl.BeginMode3D(g.cam)

	rl.DrawModel(g.core.m, rl.Vector3{}, 1, rl.White)

	rl.DisableBackfaceCulling()
	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DrawModel(g.shell.m, rl.Vector3{}, 1, rl.White)
	rl.EndBlendMode()
	rl.EnableBackfaceCulling()

	rl.EndMode3D()
	rl.EndTextureMode()
}

// Resize keeps the field of view and recomputes the aspect by reallocating
// the target at the new size.
func (g *GlobeScene) Resize(w, h float64) {
	if g.disposed || !g.view.Resize(w, h) {
		return
	}
	g.persp.Resize(w, h)
	rl.UnloadRenderTexture(g.target)
	g.loadTarget()
}

// ScreenRadius returns the on-screen radius of the core sphere in logical
// pixels.
func (g *GlobeScene) ScreenRadius() float64 {
	visible := g.persp.VisibleHeight(g.persp.Z)
	if visible <= 0 {
		return 0
	}
	return g.cfg.Radius * g.view.H / visible
}

// Hit reports whether (x, y) lies on the globe's disc.
func (g *GlobeScene) Hit(x, y float64) bool {
	cx, cy := g.view.Center()
	r := g.ScreenRadius()
	return (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r
}

// Draw composites the last render onto the current target.
func (g *GlobeScene) Draw() {
	if g.disposed {
		return
	}
	tex := g.target.Texture
	src := rl.Rectangle{Width: float32(tex.Width), Height: -float32(tex.Height)}
	dst := rl.Rectangle{Width: float32(g.view.W), Height: float32(g.view.H)}
	rl.DrawTexturePro(tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// Dispose releases every GPU resource exactly once.
func (g *GlobeScene) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true

	// UnloadModel leaves material shaders and textures alone
	rl.UnloadShader(g.atmosphere)
	rl.UnloadModel(g.shell.m)
	rl.UnloadModel(g.core.m)
	rl.UnloadTexture(g.texture)
	rl.UnloadRenderTexture(g.target)
}
