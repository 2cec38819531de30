package ggcanvas

import (
	"image"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/phanxgames/evergreen"
)

func alphaAt(img image.Image, x, y int) uint32 {
	_, _, _, a := img.At(x, y).RGBA()
	return a >> 8
}

func newCanvas(t *testing.T, w, h int) *Canvas {
	t.Helper()
	c, err := New(w, h)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewInvalidSize(t *testing.T) {
	if _, err := New(0, 10); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestCanvasSize(t *testing.T) {
	c := newCanvas(t, 120, 80)
	if w, h := c.Size(); w != 120 || h != 80 {
		t.Errorf("Size = %vx%v, want 120x80", w, h)
	}
	if err := c.Resize(64, 32); err != nil {
		t.Fatal(err)
	}
	if w, h := c.Size(); w != 64 || h != 32 {
		t.Errorf("Size after Resize = %vx%v", w, h)
	}
}

func TestFillCircle(t *testing.T) {
	c := newCanvas(t, 100, 100)
	c.FillCircle(evergreen.Vec2{X: 50, Y: 50}, 20, evergreen.RGB(1, 0, 0), 0)
	img := c.Image()
	r, g, _, a := img.At(50, 50).RGBA()
	if a>>8 < 250 || r>>8 < 250 || g>>8 > 5 {
		t.Errorf("center pixel = %v, want opaque red", img.At(50, 50))
	}
	if alphaAt(img, 5, 5) != 0 {
		t.Error("corner pixel painted")
	}
}

func TestFadeCoversSurface(t *testing.T) {
	c := newCanvas(t, 40, 40)
	c.Fade(evergreen.RGB(0, 0, 1))
	img := c.Image()
	for _, p := range [][2]int{{0, 0}, {39, 39}, {20, 10}} {
		if alphaAt(img, p[0], p[1]) < 250 {
			t.Errorf("pixel %v not covered", p)
		}
	}
}

func TestStrokeCurve(t *testing.T) {
	c := newCanvas(t, 100, 100)
	pts := []evergreen.Vec2{{X: 10, Y: 50}, {X: 50, Y: 50}, {X: 90, Y: 50}}
	paint := evergreen.Gradient{X0: 10, Y0: 50, X1: 90, Y1: 50, Stops: []evergreen.GradientStop{
		{Offset: 0, Color: evergreen.RGB(1, 0, 0)},
		{Offset: 1, Color: evergreen.RGB(0, 1, 0)},
	}}
	c.StrokeCurve(pts, 6, paint, evergreen.Color{})
	img := c.Image()
	if alphaAt(img, 50, 50) < 200 {
		t.Error("curve not drawn through the middle")
	}
	if alphaAt(img, 50, 20) != 0 {
		t.Error("curve painted far from the path")
	}
	// Fewer than two points is a no-op.
	c.StrokeCurve(pts[:1], 6, paint, evergreen.Color{})
}

func TestFillStarAndRoundRect(t *testing.T) {
	c := newCanvas(t, 100, 100)
	c.FillStar(evergreen.Vec2{X: 30, Y: 30}, 20, 0, 5, 0.45, evergreen.ColorWhite, 0)
	c.FillRoundRect(60, 60, 30, 20, 6, evergreen.Solid(evergreen.ColorWhite))
	img := c.Image()
	if alphaAt(img, 30, 30) < 250 {
		t.Error("star center not filled")
	}
	if alphaAt(img, 75, 70) < 250 {
		t.Error("round rect not filled")
	}
}

func TestDrawTextPaints(t *testing.T) {
	c := newCanvas(t, 200, 60)
	c.DrawText("Perfect!", 100, 40, 24, evergreen.ColorWhite, evergreen.AlignCenter)
	img := c.Image()
	painted := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if alphaAt(img, x, y) > 0 {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Error("text drew nothing")
	}
}

func TestOverlayDrawsOnCanvas(t *testing.T) {
	c := newCanvas(t, 400, 300)
	rec := evergreen.NewRecognizer(evergreen.DefaultConfig().Gesture,
		evergreen.WithGestureRand(rand.New(rand.NewPCG(1, 2))))
	o := evergreen.NewOverlay(rec, 400, 300, rand.New(rand.NewPCG(3, 4)))
	for i, p := range evergreen.TracePoints([]evergreen.Vec2{{X: 0.1, Y: 0.2}, {X: 0.5, Y: 0.6}, {X: 0.9, Y: 0.2}}, 12) {
		if i > 0 {
			rec.Update(40 * time.Millisecond)
		}
		rec.AddPoint(p.X, p.Y)
	}
	if err := o.Draw(c); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	// The stroke passes through the midpoint of the two lowest samples.
	if a := alphaAt(c.Image(), 200, 169); a < 150 {
		t.Errorf("trail bottom alpha = %d, want the stroke", a)
	}
}

func TestBillboardTexture(t *testing.T) {
	tests := []evergreen.BillboardSpec{
		{Content: evergreen.ContentText, Width: 60, Height: 15, Text: "MERRY CHRISTMAS", Color: evergreen.ColorWhite, Glow: evergreen.RGB(1, 0, 0)},
		{Content: evergreen.ContentStar, Width: 12, Height: 12, Color: evergreen.RGB(1, 1, 0), Glow: evergreen.ColorWhite},
		{Content: evergreen.ContentImage, Width: 8, Height: 8},
		{Content: evergreen.ContentImage, Width: 8, Height: 8, Image: image.NewRGBA(image.Rect(0, 0, 16, 16))},
	}
	for _, spec := range tests {
		img, err := BillboardTexture(spec, 8)
		if err != nil {
			t.Fatalf("%v: %v", spec.Content, err)
		}
		b := img.Bounds()
		if b.Dx() != int(spec.Width*8) || b.Dy() != int(spec.Height*8) {
			t.Errorf("%v: size %v", spec.Content, b)
		}
	}
	if _, err := BillboardTexture(evergreen.BillboardSpec{Content: 9, Width: 1, Height: 1}, 8); err == nil {
		t.Error("expected error for unknown content")
	}
}

func TestSpriteTextureFadesOut(t *testing.T) {
	for _, s := range []evergreen.Sprite{evergreen.SpriteGlow, evergreen.SpriteBulb, evergreen.SpriteSnowflake} {
		img, err := SpriteTexture(s, 32)
		if err != nil {
			t.Fatal(err)
		}
		if center, edge := alphaAt(img, 16, 16), alphaAt(img, 1, 16); center <= edge {
			t.Errorf("sprite %d: center alpha %d <= edge alpha %d", s, center, edge)
		}
	}
}

func countPainted(img image.Image) int {
	b := img.Bounds()
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x += 2 {
			if alphaAt(img, x, y) > 0 {
				n++
			}
		}
	}
	return n
}

func newSceneEngine(t *testing.T) (*evergreen.Engine, *evergreen.HeadlessRenderer) {
	t.Helper()
	cfg := evergreen.DefaultConfig()
	cfg.Seed = 3
	cfg.Scene.GoldCount, cfg.Scene.RedCount, cfg.Scene.GiftCount, cfg.Scene.SnowCount = 200, 40, 20, 50
	r := evergreen.NewHeadlessRenderer()
	eng, err := evergreen.NewEngine(cfg, r)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return eng, r
}

func TestDrawSceneTree(t *testing.T) {
	eng, r := newSceneEngine(t)
	eng.Update(time.Second / 60)

	c := newCanvas(t, 400, 300)
	c.DrawScene(r, evergreen.NewCamera(400, 300))
	if n := countPainted(c.Image()); n < 200 {
		t.Errorf("painted %d sampled pixels, want at least 200", n)
	}
}

func TestDrawScenePhoto(t *testing.T) {
	eng, r := newSceneEngine(t)
	eng.SetState(evergreen.StatePhoto)
	for range 90 {
		eng.Update(time.Second / 60)
	}

	c := newCanvas(t, 400, 300)
	c.Background(evergreen.Color{A: 1})
	c.DrawScene(r, evergreen.NewCamera(400, 300))
	cr, cg, cb, _ := c.Image().At(200, 150).RGBA()
	if cr>>8 < 240 || cg>>8 < 240 || cb>>8 < 240 {
		t.Errorf("center pixel = %v, want the white photo card", c.Image().At(200, 150))
	}
	if a := alphaAt(c.Image(), 2, 2); a != 255 {
		t.Errorf("background alpha = %d, want 255", a)
	}
}

func TestSavePNG(t *testing.T) {
	c := newCanvas(t, 16, 16)
	c.FillCircle(evergreen.Vec2{X: 8, Y: 8}, 4, evergreen.ColorWhite, 0)
	path := t.TempDir() + "/frame.png"
	if err := c.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
}

func TestComposite(t *testing.T) {
	dst := newCanvas(t, 20, 20)
	src := newCanvas(t, 20, 20)
	src.FillRoundRect(0, 0, 20, 20, 0, evergreen.Solid(evergreen.RGB(0, 1, 0)))

	dst.Composite(src, 0)
	if alphaAt(dst.Image(), 10, 10) != 0 {
		t.Error("zero opacity should draw nothing")
	}
	dst.Composite(src, 1)
	_, g, _, a := dst.Image().At(10, 10).RGBA()
	if a>>8 < 250 || g>>8 < 250 {
		t.Errorf("composited pixel = %v, want opaque green", dst.Image().At(10, 10))
	}
}
