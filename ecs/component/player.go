package component

import "github.com/milk9111/goofballs/common"

// InputLock is a set of reasons player input is ignored.
type InputLock uint8

const (
	LockCountdown InputLock = 1 << iota
	LockTutorial
	LockEncounterEnded
	LockDead
)

// PlayerControl is the per-player controller state.
type PlayerControl struct {
	// LungeAccelFactor scales move acceleration while lunging.
	LungeAccelFactor float64
	Locks            InputLock
}

var PlayerControlComponent = NewComponent[PlayerControl]()

func (p *PlayerControl) CanMove() bool { return p != nil && p.Locks == 0 }

func (p *PlayerControl) Lock(l InputLock) { p.Locks |= l }

func (p *PlayerControl) Unlock(l InputLock) { p.Locks &^= l }

// Input is the sampled player intent for the current tick.
type Input struct {
	// Move is the desired direction on the XZ plane; its length is clamped
	// to one by the controller.
	Move  common.Vec3
	Lunge bool
}

var InputComponent = NewComponent[Input]()
