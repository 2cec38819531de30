package ebitenview

import (
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/evergreen"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestAppendQuads(t *testing.T) {
	c := newCloud(evergreen.PointCloudSpec{Name: "test", Capacity: 3})
	c.SetPoints(
		[]evergreen.Vec3{{}, {X: 5}, {Z: 200}},
		[]float64{2, 0, 2},
		[]evergreen.Color{{R: 1, G: 0.5, B: 0, A: 0.5}, evergreen.ColorWhite, evergreen.ColorWhite},
	)
	verts, inds := c.appendQuads(nil, nil, evergreen.NewCamera(800, 600), 64, 64)

	// The zero-size point and the point behind the camera are skipped.
	if len(verts) != 4 || len(inds) != 6 {
		t.Fatalf("got %d verts, %d indices; want 4, 6", len(verts), len(inds))
	}
	v := verts[0]
	if !approxEqual(float64(v.ColorA), 0.5, 1e-6) || !approxEqual(float64(v.ColorR), 0.5, 1e-6) || !approxEqual(float64(v.ColorG), 0.25, 1e-6) {
		t.Errorf("premultiplied color = (%v,%v,%v,%v)", v.ColorR, v.ColorG, v.ColorB, v.ColorA)
	}
	if verts[3].SrcX != 64 || verts[3].SrcY != 64 {
		t.Errorf("last vertex samples (%v,%v), want (64,64)", verts[3].SrcX, verts[3].SrcY)
	}
	cx := (verts[0].DstX + verts[3].DstX) / 2
	cy := (verts[0].DstY + verts[3].DstY) / 2
	if !approxEqual(float64(cx), 400, 1e-3) || !approxEqual(float64(cy), 300, 1e-3) {
		t.Errorf("quad center = (%v,%v), want (400,300)", cx, cy)
	}
}

func TestAppendQuadsOpacityAndTint(t *testing.T) {
	c := newCloud(evergreen.PointCloudSpec{Capacity: 1, Tint: evergreen.Color{R: 1, G: 0, B: 1, A: 1}})
	c.SetPoints([]evergreen.Vec3{{}}, []float64{1}, []evergreen.Color{evergreen.ColorWhite})
	c.SetOpacity(0.25)
	verts, _ := c.appendQuads(nil, nil, evergreen.NewCamera(100, 100), 8, 8)
	v := verts[0]
	if !approxEqual(float64(v.ColorA), 0.25, 1e-6) || v.ColorG != 0 || !approxEqual(float64(v.ColorB), 0.25, 1e-6) {
		t.Errorf("tinted color = (%v,%v,%v,%v)", v.ColorR, v.ColorG, v.ColorB, v.ColorA)
	}
}

func TestCloudCopiesBuffers(t *testing.T) {
	c := newCloud(evergreen.PointCloudSpec{Capacity: 1})
	pos := []evergreen.Vec3{{X: 1}}
	c.SetPoints(pos, []float64{1}, []evergreen.Color{evergreen.ColorWhite})
	pos[0].X = 9
	if c.pos[0].X != 1 {
		t.Error("cloud should not alias the caller's slice")
	}
}

func TestRendererDrawOrder(t *testing.T) {
	r := NewRenderer(800, 600)
	r.NewPointCloud(evergreen.PointCloudSpec{Name: "high", Layer: 5})
	r.NewBillboard(evergreen.BillboardSpec{Name: "mid", Layer: 3})
	r.NewPointCloud(evergreen.PointCloudSpec{Name: "low", Layer: 0})
	r.NewPointCloud(evergreen.PointCloudSpec{Name: "mid2", Layer: 3})

	var names []string
	for _, d := range r.drawOrder() {
		if d.cloud != nil {
			names = append(names, d.cloud.spec.Name)
		} else {
			names = append(names, d.bb.spec.Name)
		}
	}
	if got := strings.Join(names, ","); got != "low,mid,mid2,high" {
		t.Errorf("draw order = %s, want low,mid,mid2,high", got)
	}
}

func TestRendererViewport(t *testing.T) {
	r := NewRenderer(800, 600)
	r.SetViewport(1024, 768)
	if cam := r.Camera(); cam.Width != 1024 || cam.Height != 768 {
		t.Errorf("camera = %vx%v, want 1024x768", cam.Width, cam.Height)
	}
}

func TestRendererWithEngine(t *testing.T) {
	cfg := evergreen.DefaultConfig()
	cfg.Seed = 1
	cfg.Scene.GoldCount, cfg.Scene.RedCount, cfg.Scene.GiftCount, cfg.Scene.SnowCount = 40, 20, 10, 30
	r := NewRenderer(800, 600)
	if _, err := evergreen.NewEngine(cfg, r); err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if len(r.clouds) == 0 || len(r.billboards) == 0 {
		t.Errorf("engine created %d clouds and %d billboards", len(r.clouds), len(r.billboards))
	}
}

func TestBillboardGeoM(t *testing.T) {
	b := newBillboard(evergreen.BillboardSpec{Width: 10, Height: 5})
	b.SetTransform(evergreen.Vec3{}, 2, 0)
	cam := evergreen.NewCamera(800, 600)
	m, ok := b.geoM(cam, 80, 40)
	if !ok {
		t.Fatal("billboard at origin should be visible")
	}
	_, _, k, _ := cam.Project(evergreen.Vec3{})

	cx, cy := m.Apply(40, 20)
	if !approxEqual(cx, 400, 1e-6) || !approxEqual(cy, 300, 1e-6) {
		t.Errorf("texture center maps to (%v,%v), want (400,300)", cx, cy)
	}
	rx, _ := m.Apply(80, 20)
	if !approxEqual(rx-cx, 10*k, 1e-6) {
		t.Errorf("half width on screen = %v, want %v", rx-cx, 10*k)
	}

	b.SetTransform(evergreen.Vec3{Z: 120}, 1, 0)
	if _, ok := b.geoM(cam, 80, 40); ok {
		t.Error("billboard behind the camera should be culled")
	}
}

func TestBlend(t *testing.T) {
	if blend(evergreen.BlendAdd) == blend(evergreen.BlendNormal) {
		t.Error("additive and normal blends should differ")
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"unlocked", "unlocked"},
		{"  ", "unlabeled"},
		{"tree/heart 1", "tree_heart_1"},
		{"v1.2-final", "v1.2-final"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	img := unpremultiply([]byte{64, 32, 0, 128, 10, 20, 30, 255}, 2, 1)
	got := img.NRGBAAt(0, 0)
	if got.R != 127 || got.G != 63 || got.A != 128 {
		t.Errorf("pixel 0 = %+v", got)
	}
	if img.NRGBAAt(1, 0) != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("opaque pixel changed: %+v", img.NRGBAAt(1, 0))
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := writePNG(path, image.NewNRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("writePNG: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if format != "png" || cfg.Width != 4 {
		t.Errorf("decoded %s %dx%d", format, cfg.Width, cfg.Height)
	}
}

func TestToRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if toRGBA(src, nil) != src {
		t.Error("RGBA input should be returned as is")
	}
	n := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	n.SetNRGBA(1, 1, color.NRGBA{255, 0, 0, 255})
	out := toRGBA(n, nil)
	if out.RGBAAt(1, 1) != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("converted pixel = %+v", out.RGBAAt(1, 1))
	}
}

func TestStatsText(t *testing.T) {
	s := statsText(59.9, 60, evergreen.StateHeart, evergreen.Stats{Particles: 2450, Sparks: 12})
	for _, want := range []string{"FPS: 59.9", "TPS: 60.0", "State: HEART", "Particles: 2450", "Sparks: 12"} {
		if !strings.Contains(s, want) {
			t.Errorf("stats text %q missing %q", s, want)
		}
	}
}
