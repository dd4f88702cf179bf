package arena

import (
	"github.com/milk9111/goofballs/ecs"
	"github.com/milk9111/goofballs/ecs/system"
)

// hudState keeps the last countdown, banner and dialogue line so a host can
// draw them at display cadence.
type hudState struct {
	countdown    int
	hasCountdown bool
	banner       *system.Banner
	dialogue     *system.Dialogue
	dialogueLeft float64
	playerHit    bool
}

func newHUDState() *hudState {
	return &hudState{}
}

func (h *hudState) Present(evt ecs.Event) {
	switch data := evt.Data.(type) {
	case system.Countdown:
		h.countdown = data.Remaining
		h.hasCountdown = data.Remaining > 0
	case system.Banner:
		b := data
		h.banner = &b
	case system.Dialogue:
		d := data
		h.dialogue = &d
		h.dialogueLeft = d.Duration
	case system.Damaged:
		if data.Player {
			h.playerHit = true
		}
	case system.PhaseChanged:
		if data.To != system.PhaseCountdown {
			h.hasCountdown = false
		}
	}
}

func (h *hudState) advance(realDt float64) {
	if h.dialogue == nil {
		return
	}
	h.dialogueLeft -= realDt
	if h.dialogueLeft <= 0 {
		h.dialogue = nil
	}
}
