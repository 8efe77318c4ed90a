package ui

import (
	"fmt"
	"image/color"

	"github.com/hailam/chesstutor/internal/board"
	"github.com/hailam/chesstutor/internal/engine"
	"github.com/hailam/chesstutor/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Panel dimensions
const (
	PanelPadding   = 20
	SectionSpacing = 24
	ButtonHeight   = 40
	TabHeight      = 32
	SectionLabelH  = 20
	rowHeight      = 22
)

// Panel colors
var (
	panelBg        = color.RGBA{38, 40, 45, 255}
	tabActiveBg    = color.RGBA{76, 132, 96, 255}
	tabInactiveBg  = color.RGBA{50, 54, 60, 255}
	tabHoverBg     = color.RGBA{65, 70, 78, 255}
	buttonBorder   = color.RGBA{70, 75, 82, 255}
	accentColor    = color.RGBA{76, 175, 120, 255}
	accentHover    = color.RGBA{96, 195, 140, 255}
	textPrimary    = color.RGBA{240, 240, 245, 255}
	textSecondary  = color.RGBA{160, 165, 175, 255}
	textMuted      = color.RGBA{120, 125, 135, 255}
	dividerColor   = color.RGBA{60, 65, 72, 255}
	moveRowAlt     = color.RGBA{44, 48, 54, 255}
	statusThinking = color.RGBA{100, 180, 255, 255}
	statusGameOver = color.RGBA{255, 200, 80, 255}
)

// Button is a clickable rectangle. Active reports whether a tab is the
// current choice; nil means a plain button.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	Active     func() bool
	hovered    bool
}

func (b *Button) contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Panel is the side panel with controls, move history and status.
type Panel struct {
	app *App

	newGameBtn *Button
	actionBtns []*Button
	modeTabs   []*Button
	sideTabs   []*Button
	diffTabs   []*Button

	historyY int
	scrollY  int
}

// NewPanel lays out the panel for app.
func NewPanel(app *App) *Panel {
	p := &Panel{app: app}

	x := BoardSize + PanelPadding
	w := PanelWidth - PanelPadding*2
	y := PanelPadding

	p.newGameBtn = &Button{X: x, Y: y, W: w, H: ButtonHeight, Label: "New Game (N)", OnClick: app.NewGameAction}
	y += ButtonHeight + 8

	third := w / 3
	p.actionBtns = []*Button{
		{X: x, Y: y, W: third, H: TabHeight, Label: "Undo (U)", OnClick: app.UndoAction},
		{X: x + third, Y: y, W: third, H: TabHeight, Label: "Hint (H)", OnClick: app.HintAction},
		{X: x + 2*third, Y: y, W: third, H: TabHeight, Label: "Flip (F)", OnClick: app.FlipAction},
	}
	y += TabHeight + SectionSpacing + SectionLabelH

	modes := []struct {
		label string
		mode  game.Mode
	}{
		{"vs Human", game.HumanVsHuman},
		{"vs Computer", game.HumanVsComputer},
		{"Watch", game.ComputerVsComputer},
	}
	for i, m := range modes {
		mode := m.mode
		p.modeTabs = append(p.modeTabs, &Button{
			X: x + i*third, Y: y, W: third, H: TabHeight, Label: m.label,
			OnClick: func() { app.SetMode(mode) },
			Active:  func() bool { return app.game.Mode() == mode },
		})
	}
	y += TabHeight + SectionSpacing + SectionLabelH

	half := w / 2
	for i, c := range []board.Color{board.White, board.Black} {
		side := c
		p.sideTabs = append(p.sideTabs, &Button{
			X: x + i*half, Y: y, W: half, H: TabHeight, Label: side.String(),
			OnClick: func() { app.SetHumanColor(side) },
			Active:  func() bool { return app.game.HumanColor() == side },
		})
	}
	y += TabHeight + SectionSpacing + SectionLabelH

	for i, d := range []engine.Difficulty{engine.Easy, engine.Medium, engine.Hard} {
		diff := d
		label := diff.String()
		p.diffTabs = append(p.diffTabs, &Button{
			X: x + i*third, Y: y, W: third, H: TabHeight, Label: capitalize(label),
			OnClick: func() { app.SetDifficulty(diff) },
			Active:  func() bool { return app.game.Difficulty() == diff },
		})
	}
	y += TabHeight + SectionSpacing

	p.historyY = y
	return p
}

func (p *Panel) buttons() []*Button {
	all := []*Button{p.newGameBtn}
	all = append(all, p.actionBtns...)
	all = append(all, p.modeTabs...)
	all = append(all, p.sideTabs...)
	return append(all, p.diffTabs...)
}

// HandleInput processes clicks and wheel scrolling. It reports whether
// the panel consumed the input.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()
	if mx < BoardSize {
		return false
	}

	for _, b := range p.buttons() {
		b.hovered = b.contains(mx, my)
		if b.hovered && input.IsLeftJustPressed() && b.OnClick != nil {
			b.OnClick()
			return true
		}
	}

	if dy := input.WheelY(); dy != 0 {
		p.scrollY = max(0, p.scrollY+int(dy*rowHeight))
	}
	return input.IsLeftJustPressed()
}

// AnyButtonHovered reports whether the cursor is over a button.
func (p *Panel) AnyButtonHovered() bool {
	for _, b := range p.buttons() {
		if b.hovered {
			return true
		}
	}
	return false
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, float32(BoardSize), 0, float32(PanelWidth), float32(ScreenHeight), panelBg, false)

	p.drawPrimaryButton(screen, p.newGameBtn)
	for _, b := range p.actionBtns {
		p.drawTab(screen, b)
	}

	x := BoardSize + PanelPadding
	p.drawText(screen, "Game Mode", x, p.modeTabs[0].Y-SectionLabelH, textMuted)
	for _, b := range p.modeTabs {
		p.drawTab(screen, b)
	}
	p.drawText(screen, "You Play", x, p.sideTabs[0].Y-SectionLabelH, textMuted)
	for _, b := range p.sideTabs {
		p.drawTab(screen, b)
	}
	p.drawText(screen, "Difficulty", x, p.diffTabs[0].Y-SectionLabelH, textMuted)
	for _, b := range p.diffTabs {
		p.drawTab(screen, b)
	}

	p.drawText(screen, "Moves", x, p.historyY, textMuted)
	p.drawMoveHistory(screen, p.historyY+SectionLabelH+4)
	p.drawStatusBar(screen)
}

func (p *Panel) drawPrimaryButton(screen *ebiten.Image, b *Button) {
	bg := accentColor
	if b.hovered {
		bg = accentHover
	}
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), bg, false)
	p.drawTextCentered(screen, b.Label, b.X+b.W/2, b.Y+b.H/2, textPrimary)
}

func (p *Panel) drawTab(screen *ebiten.Image, b *Button) {
	active := b.Active != nil && b.Active()

	bg, border, fg := tabInactiveBg, buttonBorder, textSecondary
	switch {
	case active:
		bg, border, fg = tabActiveBg, tabActiveBg, textPrimary
	case b.hovered:
		bg, border = tabHoverBg, accentColor
	}

	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), bg, false)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, border, false)
	p.drawTextCentered(screen, b.Label, b.X+b.W/2, b.Y+b.H/2, fg)
}

func (p *Panel) drawMoveHistory(screen *ebiten.Image, startY int) {
	moves := p.app.game.History()
	x := BoardSize + PanelPadding
	if len(moves) == 0 {
		p.drawText(screen, "No moves yet", x, startY+5, textMuted)
		return
	}

	maxY := ScreenHeight - 70
	visible := (maxY - startY) / rowHeight
	rows := (len(moves) + 1) / 2

	// Follow the game unless the user scrolled back.
	first := max(0, rows-visible-p.scrollY/rowHeight)
	y := startY
	for row := first; row < rows && y <= maxY-rowHeight; row++ {
		if row%2 == 1 {
			vector.DrawFilledRect(screen, float32(x-4), float32(y-2),
				float32(PanelWidth-PanelPadding*2+8), float32(rowHeight), moveRowAlt, false)
		}
		i := row * 2
		p.drawText(screen, fmt.Sprintf("%d.", row+1), x, y, textMuted)
		p.drawText(screen, moves[i], x+36, y, textPrimary)
		if i+1 < len(moves) {
			p.drawText(screen, moves[i+1], x+120, y, textPrimary)
		}
		y += rowHeight
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	statusY := ScreenHeight - 70
	x := BoardSize + PanelPadding
	g := p.app.game

	vector.DrawFilledRect(screen, float32(x), float32(statusY-10),
		float32(PanelWidth-PanelPadding*2), 1, dividerColor, false)

	name := p.app.prefs.Username
	if len(name) > 12 {
		name = name[:12] + "..."
	}
	p.drawText(screen, name, x, statusY, textPrimary)
	p.drawText(screen, fmt.Sprintf("Hints left: %d", g.HintsLeft()), x+150, statusY, textSecondary)

	status, c := p.app.StatusText(), textPrimary
	switch {
	case g.IsOver():
		c = statusGameOver
	case p.app.IsAIThinking():
		c = statusThinking
	}
	p.drawText(screen, status, x, statusY+22, c)
}

func (p *Panel) drawText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	face := GetRegularFace()
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

func (p *Panel) drawTextCentered(screen *ebiten.Image, s string, centerX, centerY int, c color.Color) {
	face := GetRegularFace()
	if face == nil {
		return
	}
	w, h := MeasureText(s, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(centerX)-w/2, float64(centerY)-h/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}
