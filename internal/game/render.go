package game

import (
	"image/color"
	"math"

	"knightfall/internal/action"
	"knightfall/internal/character"
	"knightfall/internal/mathutil"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

var (
	colorBackground = color.RGBA{18, 22, 18, 255}
	colorGround     = color.RGBA{52, 78, 44, 255}
	colorGroundEdge = color.RGBA{90, 120, 70, 255}
	colorTrunk      = color.RGBA{92, 64, 40, 255}
	colorCanopy     = color.RGBA{34, 110, 48, 160}
	colorPlayer     = color.RGBA{70, 140, 230, 255}
	colorEnemy      = color.RGBA{200, 200, 190, 255}
	colorDead       = color.RGBA{90, 90, 90, 255}
	colorHit        = color.RGBA{255, 60, 60, 255}
	colorDefend     = color.RGBA{240, 210, 90, 255}
	colorCone       = color.RGBA{255, 170, 60, 200}
	colorShadow     = color.RGBA{0, 0, 0, 90}
	colorCamera     = color.RGBA{160, 200, 255, 200}
)

// view maps the XZ plane onto the screen: the player at the centre and the
// camera's forward direction pointing up.
type view struct {
	focus          cp.Vector
	forward, right cp.Vector
	scale          float64
	cx, cy         float64
}

func (v view) project(p mathutil.Vec3) (float32, float32) {
	rel := p.Planar().Sub(v.focus)
	x := v.cx + rel.Dot(v.right)*v.scale
	y := v.cy - rel.Dot(v.forward)*v.scale
	return float32(x), float32(y)
}

// direction maps a planar world direction to a screen direction.
func (v view) direction(d cp.Vector) (float64, float64) {
	return d.Dot(v.right), -d.Dot(v.forward)
}

func (g *Game) currentView() view {
	p := g.session.Player()
	forward, right := p.Camera.Basis()
	return view{
		focus:   p.Position.Planar(),
		forward: forward,
		right:   right,
		scale:   g.config.Display.PixelsPerUnit,
		cx:      float64(g.config.GetScreenWidth()) / 2,
		cy:      float64(g.config.GetScreenHeight()) / 2,
	}
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	v := g.currentView()
	env := g.session.Environment()

	half := env.Layout().GroundSize / 2
	corners := []mathutil.Vec3{
		mathutil.V3(-half, 0, -half),
		mathutil.V3(half, 0, -half),
		mathutil.V3(half, 0, half),
		mathutil.V3(-half, 0, half),
	}
	var ground vector.Path
	for i, c := range corners {
		x, y := v.project(c)
		if i == 0 {
			ground.MoveTo(x, y)
		} else {
			ground.LineTo(x, y)
		}
	}
	ground.Close()
	g.fillPath(screen, &ground, colorGround)
	for i := range corners {
		x1, y1 := v.project(corners[i])
		x2, y2 := v.project(corners[(i+1)%len(corners)])
		vector.StrokeLine(screen, x1, y1, x2, y2, 2, colorGroundEdge, true)
	}

	for _, e := range g.session.Enemies() {
		g.drawCharacter(screen, v, e.Character, colorEnemy)
	}
	g.drawCharacter(screen, v, g.session.Player().Character, colorPlayer)

	scale := float32(v.scale)
	for _, t := range env.Trees() {
		x, y := v.project(t.Position)
		vector.DrawFilledCircle(screen, x, y, float32(t.Radius)*scale, colorTrunk, true)
		vector.DrawFilledCircle(screen, x, y, float32(t.Radius*t.Scale*2)*scale, colorCanopy, true)
	}

	cam := g.session.Player().Camera
	cx, cy := v.project(cam.Position)
	vector.StrokeCircle(screen, cx, cy, 4, 1.5, colorCamera, true)
}

func (g *Game) drawCharacter(screen *ebiten.Image, v view, ch *character.Character, base color.RGBA) {
	x, y := v.project(ch.Position)
	scale := float32(v.scale)
	r := float32(ch.Radius) * scale

	// Height above the ground lifts the body off its shadow.
	ground := g.session.Environment().HeightAt(ch.Position.X, ch.Position.Z)
	lift := float32(math.Max(0, ch.Position.Y-ground)) * scale * 0.5
	vector.DrawFilledCircle(screen, x, y, r, colorShadow, true)

	body := base
	switch {
	case !ch.Alive:
		body = colorDead
	case ch.HitFlash > 0:
		body = colorHit
	}
	vector.DrawFilledCircle(screen, x, y-lift, r, body, true)
	if ch.IsDefending {
		vector.StrokeCircle(screen, x, y-lift, r+3, 2, colorDefend, true)
	}

	dx, dy := v.direction(ch.Forward())
	tip := r + 0.4*scale
	vector.StrokeLine(screen, x, y-lift, x+float32(dx)*tip, y-lift+float32(dy)*tip, 2, color.Black, true)

	if ch.IsAttacking && ch.Actions.Current() == action.Attack {
		drawCone(screen, x, y-lift, v.direction, ch.Forward(), ch.AttackRange*float64(v.scale), ch.AttackAngle/2)
	}
	if ch.Alive {
		drawBar(screen, x-r, y-lift-r-6, 2*r, 3, ch.Health/ch.MaxHealth, colorHit)
	}
}

// drawCone outlines an attack cone of the given screen radius around
// facing.
func drawCone(screen *ebiten.Image, x, y float32, toScreen func(cp.Vector) (float64, float64), facing cp.Vector, radius, halfAngle float64) {
	const segments = 12
	base := mathutil.YawOf(facing)
	var px, py float32
	for i := 0; i <= segments; i++ {
		a := base - halfAngle + 2*halfAngle*float64(i)/segments
		dx, dy := toScreen(mathutil.Forward(a))
		ex, ey := x+float32(dx*radius), y+float32(dy*radius)
		if i == 0 || i == segments {
			vector.StrokeLine(screen, x, y, ex, ey, 1.5, colorCone, true)
		}
		if i > 0 {
			vector.StrokeLine(screen, px, py, ex, ey, 1.5, colorCone, true)
		}
		px, py = ex, ey
	}
}

func (g *Game) fillPath(dst *ebiten.Image, path *vector.Path, clr color.RGBA) {
	if g.whiteImg == nil {
		// 1x1 white source for DrawTriangles
		g.whiteImg = ebiten.NewImage(1, 1)
		g.whiteImg.Fill(color.White)
	}
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r, gr, b, a := float32(clr.R)/255, float32(clr.G)/255, float32(clr.B)/255, float32(clr.A)/255
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 0.5, 0.5
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, gr, b, a
	}
	dst.DrawTriangles(vs, is, g.whiteImg, &ebiten.DrawTrianglesOptions{})
}
