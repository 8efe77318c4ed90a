package ui

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/hailam/chesstutor/internal/board"
	"github.com/hailam/chesstutor/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ToastType represents the type of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastSuccess
)

// Toast is a short notification shown over the board.
type Toast struct {
	Message   string
	Type      ToastType
	StartTime time.Time
	Duration  time.Duration
}

// flash is a fading square overlay.
type flash struct {
	square    board.Square
	startTime time.Time
	duration  time.Duration
	color     color.RGBA
}

// FeedbackManager shows toasts, flashes squares and plays sounds in
// response to game events.
type FeedbackManager struct {
	toasts   []*Toast
	flashes  []*flash
	maxStack int
	audio    *AudioManager
}

// NewFeedbackManager creates a new feedback manager.
func NewFeedbackManager(sound bool) *FeedbackManager {
	return &FeedbackManager{
		maxStack: 3,
		audio:    NewAudioManager(sound),
	}
}

// Audio returns the audio manager.
func (fm *FeedbackManager) Audio() *AudioManager {
	return fm.audio
}

// Show displays a new toast.
func (fm *FeedbackManager) Show(message string, t ToastType, d time.Duration) {
	fm.toasts = append(fm.toasts, &Toast{
		Message:   message,
		Type:      t,
		StartTime: time.Now(),
		Duration:  d,
	})
	if len(fm.toasts) > fm.maxStack {
		fm.toasts = fm.toasts[1:]
	}
}

// Update drops expired toasts and flashes.
func (fm *FeedbackManager) Update() {
	now := time.Now()

	active := fm.toasts[:0]
	for _, t := range fm.toasts {
		if now.Sub(t.StartTime) < t.Duration {
			active = append(active, t)
		}
	}
	fm.toasts = active

	flashes := fm.flashes[:0]
	for _, f := range fm.flashes {
		if now.Sub(f.startTime) < f.duration {
			flashes = append(flashes, f)
		}
	}
	fm.flashes = flashes
}

// OnMove plays the sound for a move that was just made and announces
// check or the end of the game.
func (fm *FeedbackManager) OnMove(m board.Move, g *game.Game) {
	switch {
	case g.IsOver():
		fm.Show(g.ResultText(), ToastSuccess, 5*time.Second)
		fm.audio.Play(SoundGameEnd)
		return
	case g.Position().InCheck():
		fm.Show("Check!", ToastWarning, 2*time.Second)
		fm.audio.Play(SoundCheck)
		return
	case m.IsCastling():
		fm.audio.Play(SoundCastle)
	case !m.IsQuiet():
		// Captures and promotions.
		fm.audio.Play(SoundCapture)
	default:
		fm.audio.Play(SoundMove)
	}
}

// OnRejected explains a rejected move request.
func (fm *FeedbackManager) OnRejected(req board.MoveRequest, res game.Result) {
	msg := "Invalid move"
	switch {
	case res.Reason != board.ReasonNone:
		msg = capitalize(res.Reason.String())
	case errors.Is(res.Err, game.ErrGameOver):
		msg = "The game is over"
	case res.Err != nil:
		msg = capitalize(res.Err.Error())
	}

	fm.Show(msg, ToastWarning, 2*time.Second)
	if req.To.IsValid() {
		fm.flashes = append(fm.flashes, &flash{
			square:    req.To,
			startTime: time.Now(),
			duration:  400 * time.Millisecond,
			color:     color.RGBA{255, 80, 80, 150},
		})
	}
	fm.audio.Play(SoundInvalid)
}

// OnHint announces a suggested move.
func (fm *FeedbackManager) OnHint(m board.Move, left int) {
	fm.Show(fmt.Sprintf("Hint: %v (%d left)", m, left), ToastInfo, 3*time.Second)
	fm.audio.Play(SoundHint)
}

// OnError shows a plain error message.
func (fm *FeedbackManager) OnError(err error) {
	fm.Show(capitalize(err.Error()), ToastWarning, 2*time.Second)
}

// Draw renders flashes over the board and toasts centered on it.
func (fm *FeedbackManager) Draw(screen *ebiten.Image, bv *BoardView) {
	for _, f := range fm.flashes {
		progress := time.Since(f.startTime).Seconds() / f.duration.Seconds()
		if progress >= 1 {
			continue
		}
		c := f.color
		c.A = uint8(float64(c.A) * (1 - progress))
		x, y := bv.SquareToScreen(f.square)
		size := float32(bv.SquareSize())
		vector.DrawFilledRect(screen, float32(x), float32(y), size, size, c, false)
	}

	face := GetRegularFace()
	if face == nil {
		return
	}

	y := 50.0
	for _, t := range fm.toasts {
		elapsed := time.Since(t.StartTime).Seconds()
		duration := t.Duration.Seconds()

		alpha := 1.0
		const fade = 0.2
		if elapsed < fade {
			alpha = elapsed / fade
		} else if elapsed > duration-fade {
			alpha = (duration - elapsed) / fade
		}

		bg := color.RGBA{50, 100, 150, uint8(220 * alpha)}
		fg := color.RGBA{255, 255, 255, uint8(255 * alpha)}
		switch t.Type {
		case ToastWarning:
			bg = color.RGBA{180, 140, 20, uint8(220 * alpha)}
			fg = color.RGBA{40, 30, 0, uint8(255 * alpha)}
		case ToastSuccess:
			bg = color.RGBA{50, 150, 50, uint8(220 * alpha)}
		}

		w, h := MeasureText(t.Message, face)
		const padding = 12.0
		boxW, boxH := w+padding*2, h+padding*2
		x := float64(BoardSize)/2 - boxW/2

		vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), bg, false)

		op := &text.DrawOptions{}
		op.GeoM.Translate(x+padding, y+padding)
		op.ColorScale.ScaleWithColor(fg)
		text.Draw(screen, t.Message, face, op)

		y += boxH + 8
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
