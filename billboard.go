package evergreen

import (
	"image"
	"math"
	"strconv"
)

const (
	titleY       = 50.0
	loveZ        = 20.0
	photoFrontZ  = 60.0
	billboardLag = 0.15
	hiddenBelow  = 0.01
)

var (
	titleColor = MustHex("#FFD700")
	titleGlow  = MustHex("#FF0000")
	starColor  = MustHex("#FFFF00")
	loveColor  = MustHex("#FF69B4")
	loveGlow   = MustHex("#FF1493")
)

// BillboardState is the transform and visibility of one billboard.
type BillboardState struct {
	Position  Vec3
	Scale     float64
	RotationZ float64
	Opacity   float64
	Visible   bool
}

func (b *BillboardState) push(h Billboard) {
	if h == nil {
		return
	}
	h.SetVisible(b.Visible)
	h.SetOpacity(b.Opacity)
	h.SetTransform(b.Position, b.Scale, b.RotationZ)
}

// billboardSet holds the title, star, love text and photo cards, and the
// cross-fade rules that drive them.
type billboardSet struct {
	title, star, love BillboardState
	photos            []BillboardState
	selected          int

	titleH, starH, loveH Billboard
	photoH               []Billboard
}

func newBillboardSet(r Renderer, cfg SceneConfig, photos []image.Image) *billboardSet {
	s := &billboardSet{
		title:  BillboardState{Position: Vec3{0, titleY, 0}, Scale: 1, Opacity: 1, Visible: true},
		star:   BillboardState{Position: Vec3{0, cfg.TreeHeight/2 + 2, 0}, Scale: 1, Opacity: 1, Visible: true},
		love:   BillboardState{Position: Vec3{0, 0, loveZ}, Scale: 1},
		photos: make([]BillboardState, cfg.PhotoCount),
		photoH: make([]Billboard, cfg.PhotoCount),
	}
	s.titleH = r.NewBillboard(BillboardSpec{
		Name: "title", Content: ContentText, Width: 60, Height: 15,
		Text: "MERRY CHRISTMAS", Color: titleColor, Glow: titleGlow, Blend: BlendAdd, Layer: 6,
	})
	s.starH = r.NewBillboard(BillboardSpec{
		Name: "star", Content: ContentStar, Width: 12, Height: 12,
		Color: starColor, Glow: ColorWhite, Blend: BlendAdd, Layer: 6,
	})
	s.loveH = r.NewBillboard(BillboardSpec{
		Name: "love", Content: ContentText, Width: 70, Height: 18,
		Text: "I LOVE YOU", Color: loveColor, Glow: loveGlow, Blend: BlendAdd, Layer: 6,
	})
	for i := range s.photos {
		var img image.Image
		if i < len(photos) {
			img = photos[i]
		}
		s.photoH[i] = r.NewBillboard(BillboardSpec{
			Name: photoName(i), Content: ContentImage, Width: 8, Height: 8,
			Image: img, Color: ColorWhite, Blend: BlendNormal, Layer: 7,
		})
	}
	return s
}

func photoName(i int) string {
	return "photo-" + strconv.Itoa(i)
}

// fadeInput is the transition view the billboards read each frame.
type fadeInput struct {
	state   State
	tr      *Transition
	time    float64
	frames  float64
	goldRot float64
	orbit   float64
}

// enter returns the opacity of something fading in toward s. Settled states
// give 1.
func (in fadeInput) enter(s State) float64 {
	switch {
	case in.tr.Active && in.tr.To == s:
		return in.tr.Eased()
	case in.tr.Active && in.tr.From == s:
		return 1 - in.tr.Eased()
	}
	return 1
}

// leave returns the opacity of something that belongs to from and is fading
// out. It is zero unless a transition away from from is running.
func (in fadeInput) leave(from State) float64 {
	if in.tr.Active && in.tr.From == from {
		return 1 - in.tr.Eased()
	}
	return 0
}

func (in fadeInput) lag() float64 {
	return 1 - math.Pow(1-billboardLag, in.frames)
}

func (s *billboardSet) update(in fadeInput) {
	k := in.lag()
	s.star.RotationZ -= 0.02 * in.frames

	switch in.state {
	case StateTree:
		op := in.enter(StateTree)
		s.showTitle(op, 0.5+op*0.5, k)
		if s.star.Visible {
			s.star.Opacity = (0.7 + 0.3*math.Sin(in.time*5)) * op
		}
		s.love.Visible = false
		for i := range s.photos {
			p := &s.photos[i]
			p.Scale = lerp(p.Scale, 0, k)
			p.Visible = false
		}

	case StateHeart:
		loveOp := in.enter(StateHeart)
		titleOp := in.leave(StateTree)
		s.showTitle(titleOp, titleOp, k)
		s.love.Visible = loveOp > hiddenBelow
		if s.love.Visible {
			s.love.Scale = (0.5 + loveOp*0.5) * (1 + math.Abs(math.Sin(in.time*3))*0.1)
			s.love.Opacity = loveOp
		}
		for i := range s.photos {
			s.photos[i].Visible = false
		}

	case StateExplode:
		photoOp := 1.0
		if in.tr.Active && in.tr.To == StateExplode {
			photoOp = math.Max(0.5, in.tr.Eased())
		}
		decoOp := in.leave(StateTree)
		s.showTitle(decoOp, decoOp, k)
		s.love.Visible = false
		s.orbit(in, photoOp, k)

	case StatePhoto:
		s.title.Visible = false
		s.star.Visible = false
		s.love.Visible = false
		photoOp := 1.0
		if in.tr.Active && in.tr.To == StatePhoto {
			photoOp = math.Max(0.7, in.tr.Eased())
		}
		for i := range s.photos {
			p := &s.photos[i]
			if i != s.selected {
				p.Scale = lerp(p.Scale, 0, k)
				p.Visible = false
				continue
			}
			p.Visible = true
			p.Position = p.Position.Lerp(Vec3{0, 0, photoFrontZ}, k)
			p.Scale = lerp(p.Scale, math.Max(4, 2+photoOp*3), k)
			p.RotationZ = 0
			p.Opacity = 1
		}
	}
}

// showTitle fades the title and star together.
func (s *billboardSet) showTitle(op, scale, k float64) {
	vis := op > hiddenBelow
	s.title.Visible = vis
	s.star.Visible = vis
	if !vis {
		return
	}
	s.title.Opacity = op
	s.title.Scale = lerp(s.title.Scale, scale, k)
	s.star.Opacity = op
}

// orbit circles the photo cards around the tree axis, following the gold
// group's rotation. The card nearest the camera becomes the selection.
func (s *billboardSet) orbit(in fadeInput, photoOp, k float64) {
	n := len(s.photos)
	if n == 0 {
		return
	}
	step := 2 * math.Pi / float64(n)
	best, maxZ := 0, math.Inf(-1)
	for i := range s.photos {
		p := &s.photos[i]
		p.Visible = true
		angle := in.goldRot + float64(i)*step
		x := math.Sin(angle) * in.orbit
		z := math.Cos(angle) * in.orbit
		y := math.Sin(in.time+float64(i)) * 3
		p.Position = p.Position.Lerp(Vec3{x, y, z}, k)
		p.Opacity = math.Max(0.7, photoOp)
		if z > maxZ {
			maxZ, best = z, i
		}
		var ds float64
		if z > 5 {
			ds = math.Max(0.5, (0.5+photoOp*0.5)*(1+(z/in.orbit)*0.8))
		} else {
			ds = math.Max(0.5, 0.5+photoOp*0.3)
		}
		p.Scale = lerp(p.Scale, ds, k)
	}
	s.selected = best
}

func (s *billboardSet) push() {
	s.title.push(s.titleH)
	s.star.push(s.starH)
	s.love.push(s.loveH)
	for i := range s.photos {
		s.photos[i].push(s.photoH[i])
	}
}
