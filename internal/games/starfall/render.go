package starfall

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/starfall/internal/config"
	"github.com/vovakirdan/starfall/internal/core"
)

// Palette
const (
	colorPlatform = core.ColorGreen
	colorStar     = core.ColorBrightYellow
	colorBomb     = core.ColorBrightMagenta
	colorPlayer   = core.ColorBrightWhite
	colorHUD      = core.ColorBrightYellow
)

// viewport maps world units onto screen cells.
type viewport struct {
	sx, sy float64
}

func newViewport(w *World, cols, rows int) viewport {
	return viewport{
		sx: float64(cols) / w.Width,
		sy: float64(rows) / w.Height,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) row(y float64) int {
	return int(math.Floor(y * v.sy))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	v := newViewport(g.world, dst.Width(), dst.Height())

	g.drawPlatforms(dst, v)
	g.drawStars(dst, v)
	g.drawBombs(dst, v)
	g.drawPlayer(dst, v)

	// HUD
	dst.DrawTextColor(1, 0, " "+g.world.HUD.ScoreText+" ", colorHUD)
	if g.difficulty != nil && g.difficulty.IsEnabled() {
		level := g.difficulty.Level(g.round.Score(), g.tickCount)
		levelText := fmt.Sprintf(" Lvl: %.1f ", level)
		dst.DrawText(dst.Width()-len(levelText)-1, 0, levelText)
	}

	dissolve(dst, g.world.Camera.FadeProgress())

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.round.Over() {
		drawCenteredMessage(dst, "GAME OVER", g.round.ScoreText())
	}
}

func (g *Game) drawPlatforms(dst *core.Screen, v viewport) {
	glyph := firstRune(g.sprites["ground"], '▓')
	for _, p := range g.world.Platforms {
		x0, y0 := v.col(p.X), v.row(p.Y)
		x1 := core.Max(x0+1, v.col(p.Right()))
		y1 := core.Max(y0+1, v.row(p.Bottom()))
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				dst.SetColor(x, y, glyph, colorPlatform)
			}
		}
	}
}

func (g *Game) drawStars(dst *core.Screen, v viewport) {
	sprite := g.sprites["star"]
	for _, s := range g.world.Stars {
		if !s.Active {
			continue
		}
		// One frame per quarter turn
		frame := int(s.Rotation / (math.Pi / 2))
		g.drawSprite(dst, v, sprite, frame, &s.Body, '*', colorStar)
	}
}

func (g *Game) drawBombs(dst *core.Screen, v viewport) {
	sprite := g.sprites["bomb"]
	for _, b := range g.world.Bombs {
		dst.SetColor(v.col(b.X), v.row(b.Y), firstRuneOfFrame(sprite, 0, '@'), colorBomb)
	}
}

func (g *Game) drawPlayer(dst *core.Screen, v viewport) {
	p := g.world.Player
	color := colorPlayer
	if p.Tint != core.ColorDefault {
		color = p.Tint
	}
	g.drawSprite(dst, v, g.sprites["dude"], p.Anim.Frame(), &p.Body, 'o', color)
}

// drawSprite draws a sprite frame centered on the body horizontally with
// its last row just above the cell holding the body's bottom edge.
func (g *Game) drawSprite(dst *core.Screen, v viewport, sprite config.Sprite, frame int, b *Body, fallback rune, color core.Color) {
	rows := sprite.Frame(frame)
	if len(rows) == 0 {
		dst.SetColor(v.col(b.X), v.row(b.Bottom())-1, fallback, color)
		return
	}

	w, h := sprite.Size()
	x0 := v.col(b.X) - w/2
	y0 := v.row(b.Bottom()) - h
	for dy, row := range rows {
		dx := 0
		for _, r := range row {
			if r != ' ' {
				dst.SetColor(x0+dx, y0+dy, r, color)
			}
			dx++
		}
	}
}

// dissolve blanks a growing share of cells in a fixed dither pattern.
// At progress 1 the screen is empty.
func dissolve(dst *core.Screen, progress float64) {
	if progress <= 0 {
		return
	}
	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			threshold := float64((x*7+y*13)%16+1) / 16
			if threshold <= progress {
				dst.SetColor(x, y, ' ', core.ColorDefault)
			}
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := core.Max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	titleX := boxX + (boxW-utf8.RuneCountInString(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-utf8.RuneCountInString(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

func firstRune(s config.Sprite, fallback rune) rune {
	return firstRuneOfFrame(s, 0, fallback)
}

func firstRuneOfFrame(s config.Sprite, frame int, fallback rune) rune {
	rows := s.Frame(frame)
	if len(rows) == 0 || rows[0] == "" {
		return fallback
	}
	r, _ := utf8.DecodeRuneInString(rows[0])
	return r
}
