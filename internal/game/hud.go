package game

import (
	"fmt"
	"image/color"
	"sort"
	"time"

	"knightfall/internal/mathutil"
	"knightfall/internal/session"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var (
	colorHealth   = color.RGBA{200, 50, 50, 255}
	colorMana     = color.RGBA{60, 110, 230, 255}
	colorBarBack  = color.RGBA{30, 30, 30, 200}
	colorBorder   = color.RGBA{200, 200, 200, 255}
	colorOverlay  = color.RGBA{0, 0, 0, 160}
	colorTitle    = color.RGBA{240, 220, 160, 255}
	colorText     = color.RGBA{230, 230, 230, 255}
	colorSlot     = color.RGBA{40, 40, 50, 200}
	colorSlotEdge = color.RGBA{110, 110, 130, 255}
)

const hotbarSlots = 5

func drawFilledRect(dst *ebiten.Image, x, y, w, h float32, clr color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	vector.DrawFilledRect(dst, x, y, w, h, clr, false)
}

// drawBar draws a background track with a fill proportional to frac.
func drawBar(dst *ebiten.Image, x, y, w, h float32, frac float64, clr color.Color) {
	drawFilledRect(dst, x, y, w, h, colorBarBack)
	drawFilledRect(dst, x, y, w*float32(mathutil.Clamp(frac, 0, 1)), h, clr)
}

// drawText draws s with its top-left corner at x, y.
func drawText(dst *ebiten.Image, s string, x, y int, clr color.Color) {
	face := basicfont.Face7x13
	ebitext.Draw(dst, s, face, x, y+face.Ascent, clr)
}

// drawCenteredText centres s horizontally on the screen.
func drawCenteredText(dst *ebiten.Image, s string, y int, clr color.Color) {
	w := font.MeasureString(basicfont.Face7x13, s).Round()
	drawText(dst, s, (dst.Bounds().Dx()-w)/2, y, clr)
}

func ratio(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return v / max
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	const (
		x      = 20
		barW   = 220
		barH   = 16
		health = 20
		mana   = 42
	)
	h := g.hud

	drawBar(screen, x, health, barW, barH, ratio(h.health, h.maxHealth), colorHealth)
	vector.StrokeRect(screen, x, health, barW, barH, 1, colorBorder, false)
	drawText(screen, fmt.Sprintf("HP %.0f/%.0f", h.health, h.maxHealth), x+6, health+2, colorText)

	drawBar(screen, x, mana, barW, barH, ratio(h.mana, h.maxMana), colorMana)
	vector.StrokeRect(screen, x, mana, barW, barH, 1, colorBorder, false)
	drawText(screen, fmt.Sprintf("MP %.0f/%.0f", h.mana, h.maxMana), x+6, mana+2, colorText)

	// Hotbar: slot 1 is the sword, the rest are empty.
	const slot = 40
	sw, sh := g.config.GetScreenWidth(), g.config.GetScreenHeight()
	left := float32(sw-hotbarSlots*(slot+6)) / 2
	top := float32(sh - slot - 16)
	for i := 0; i < hotbarSlots; i++ {
		sx := left + float32(i*(slot+6))
		drawFilledRect(screen, sx, top, slot, slot, colorSlot)
		vector.StrokeRect(screen, sx, top, slot, slot, 1, colorSlotEdge, false)
		drawText(screen, fmt.Sprint(i+1), int(sx)+3, int(top)+2, colorText)
	}
	drawText(screen, "SWD", int(left)+10, int(top)+20, colorTitle)
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	state := g.session.State()
	if state == session.Playing {
		return
	}
	b := screen.Bounds()
	drawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), colorOverlay)

	mid := b.Dy() / 2
	switch state {
	case session.Menu:
		drawCenteredText(screen, g.config.Display.WindowTitle, mid-60, colorTitle)
		drawCenteredText(screen, "Press Enter to start", mid-20, colorText)
		drawCenteredText(screen, "WASD move  Space jump  LMB attack  RMB defend  Esc pause", mid+10, colorText)
	case session.Paused:
		st := g.session.Settings()
		drawCenteredText(screen, "Paused", mid-60, colorTitle)
		drawCenteredText(screen, "Press Esc to resume", mid-30, colorText)
		drawCenteredText(screen, fmt.Sprintf("[1/2] Sensitivity %.1f", st.Sensitivity), mid+10, colorText)
		drawCenteredText(screen, fmt.Sprintf("[3/4] Music %.0f%%", st.MusicVolume*100), mid+30, colorText)
		drawCenteredText(screen, fmt.Sprintf("[5/6] Effects %.0f%%", st.SFXVolume*100), mid+50, colorText)
	case session.GameOver:
		drawCenteredText(screen, "You have fallen", mid-40, colorHit)
		drawCenteredText(screen, "R restart   M menu", mid, colorText)
	}
}

func (g *Game) drawDebugInfo(screen *ebiten.Image) {
	s := g.session
	p := s.Player()
	m := g.perf.GetCurrentMetrics()
	lines := []string{
		fmt.Sprintf("FPS %.0f  TPS %.0f  update %v avg  mem %dMB", ebiten.ActualFPS(), ebiten.ActualTPS(), m.AverageFrame.Round(time.Microsecond), m.MemoryAllocMB),
		fmt.Sprintf("state %s  t=%.2f  pending %d  faults %d", s.State(), s.Clock(), s.PendingAttacks(), s.Faults()),
		fmt.Sprintf("player %.2f %.2f %.2f  %s  ground=%v", p.Position.X, p.Position.Y, p.Position.Z, p.Actions.Current(), p.OnGround),
		fmt.Sprintf("camera phi=%.2f theta=%.2f", p.Camera.Phi, p.Camera.Theta),
	}
	ids := make([]string, 0, len(s.Enemies()))
	decisions := make(map[string]string)
	for _, e := range s.Enemies() {
		ids = append(ids, e.ID)
		decisions[e.ID] = fmt.Sprintf("%s %s hp=%.0f", e.LastDecision(), e.Actions.Current(), e.Health)
	}
	sort.Strings(ids)
	for _, id := range ids {
		lines = append(lines, id+": "+decisions[id])
	}
	for _, ph := range m.Phases {
		lines = append(lines, fmt.Sprintf("%s %v", ph.Name, ph.Average.Round(time.Microsecond)))
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, 20, 70+i*16)
	}
}
