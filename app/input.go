package app

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/stalker-eyes/render"
	"github.com/lixenwraith/stalker-eyes/vmath"
)

type pointerSub struct {
	id uint64
	fn func(vmath.Vec2)
}

// InputHandler processes terminal events on the loop goroutine
// It is the controller's pointer source
type InputHandler struct {
	metrics  render.Metrics
	onResize func(cols, rows int)
	logger   *zap.Logger

	subs    []pointerSub
	nextSub uint64

	// Motion events arrive per cell crossed; debug logs are sampled
	sample rate.Sometimes
}

// NewInputHandler creates an input handler converting cells with m
func NewInputHandler(m render.Metrics, onResize func(cols, rows int), logger *zap.Logger) *InputHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InputHandler{
		metrics:  m,
		onResize: onResize,
		logger:   logger,
		sample:   rate.Sometimes{First: 1, Interval: time.Second},
	}
}

// SubscribePointer registers fn for pointer positions in pointer units
func (h *InputHandler) SubscribePointer(fn func(vmath.Vec2)) (cancel func()) {
	h.nextSub++
	id := h.nextSub
	h.subs = append(h.subs, pointerSub{id: id, fn: fn})
	return func() {
		for i, s := range h.subs {
			if s.id == id {
				h.subs = append(h.subs[:i:i], h.subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns the number of pointer subscribers
func (h *InputHandler) Subscribers() int {
	return len(h.subs)
}

// HandleEvent processes a tcell event and returns false if the app should exit
func (h *InputHandler) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return !isQuit(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		h.dispatch(h.metrics.CellCenter(x, y))
	case *tcell.EventResize:
		cols, rows := ev.Size()
		if h.onResize != nil {
			h.onResize(cols, rows)
		}
	}
	return true
}

func (h *InputHandler) dispatch(p vmath.Vec2) {
	h.sample.Do(func() {
		h.logger.Debug("pointer", zap.Float64("x", p.X), zap.Float64("y", p.Y))
	})

	// Snapshot so a subscriber may cancel during delivery
	subs := append([]pointerSub(nil), h.subs...)
	for _, s := range subs {
		s.fn(p)
	}
}

// isQuit matches q, Q, Escape and Ctrl-C
func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
