// Package narration plays the guided lesson that walks a learner through a cross.
//
// A Player is a small state machine: Idle until started, Speaking while a step is
// being voiced, and Stopped after a cancellation. Completion events from the speech
// service advance it one step at a time.
package narration

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrEmptyScript   = errors.New("narration script is empty")
	ErrAlreadyActive = errors.New("narration already active")
	ErrNotActive     = errors.New("narration not active")
	ErrStopped       = errors.New("narration stopped")
)

type State int

const (
	StateIdle State = iota
	StateSpeaking
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSpeaking:
		return "speaking"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Target names the scene element highlighted while a step is spoken.
type Target string

const (
	TargetNone         Target = "none"
	TargetDNA          Target = "dna"
	TargetParents      Target = "parents"
	TargetGenotypes    Target = "genotypes"
	TargetPunnettBoard Target = "punnett_board"
	TargetOffspring    Target = "offspring"
	TargetCell0        Target = "cell_0"
	TargetCell1        Target = "cell_1"
	TargetCell2        Target = "cell_2"
	TargetCell3        Target = "cell_3"
)

// CellTarget returns the highlight target of grid cell i in row-major order.
func CellTarget(i int) Target {
	return []Target{TargetCell0, TargetCell1, TargetCell2, TargetCell3}[i]
}

// Action is a side effect the presentation layer performs when a step begins.
type Action string

const (
	ActionNone        Action = ""
	ActionRevealCross Action = "reveal_cross"
	ActionFinish      Action = "finish"
)

type Step struct {
	Text   string
	Target Target
	Action Action
	// Delay is the pause after the step finishes speaking, at normal speed.
	Delay time.Duration
}

// Player tracks progress through a script. It is safe for concurrent use, so a
// speech completion callback and a user cancellation may race.
type Player struct {
	mu     sync.Mutex
	script []Step
	state  State
	index  int
}

func NewPlayer(script []Step) *Player {
	return &Player{script: append([]Step(nil), script...)}
}

// Start moves an idle or stopped player to the first step.
func (p *Player) Start() (Step, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateSpeaking {
		return Step{}, ErrAlreadyActive
	}
	if len(p.script) == 0 {
		return Step{}, ErrEmptyScript
	}
	p.state = StateSpeaking
	p.index = 0
	return p.script[0], nil
}

// Complete records that the current step finished. It returns the next step, or
// false once the script is exhausted and the player is idle again.
func (p *Player) Complete() (Step, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateSpeaking {
		return Step{}, false, ErrNotActive
	}
	if p.index+1 >= len(p.script) {
		p.state = StateIdle
		p.index = 0
		return Step{}, false, nil
	}
	p.index++
	return p.script[p.index], true, nil
}

// Stop cancels playback. Stopping an inactive player is a no-op.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateSpeaking {
		p.state = StateStopped
	}
	p.index = 0
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Index returns the step being spoken. It is meaningful only while speaking.
func (p *Player) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

func (p *Player) Len() int {
	return len(p.script)
}
