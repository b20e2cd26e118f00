package narration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// BaseRate is the speech rate at normal playback speed.
const BaseRate = 0.9

// Rate scales BaseRate by a playback speed. Non-positive speeds count as 1.
func Rate(speed float64) float64 {
	if speed <= 0 {
		speed = 1
	}
	return BaseRate * speed
}

type Utterance struct {
	Text   string
	Target Target
	Rate   float64
}

// Speaker voices one utterance and returns once it has finished.
type Speaker interface {
	Speak(ctx context.Context, u Utterance) error
}

type RunOptions struct {
	// Speed multiplies the speech rate and divides inter-step delays.
	Speed float64
	// OnStep is called before each step is spoken.
	OnStep func(index int, step Step)
}

// Run plays the player's script through speaker until it finishes, fails or ctx
// is cancelled. A cancelled context or an external Stop leaves the player stopped.
func Run(ctx context.Context, player *Player, speaker Speaker, opts RunOptions) error {
	speed := opts.Speed
	if speed <= 0 {
		speed = 1
	}

	step, err := player.Start()
	if err != nil {
		return err
	}

	for index := 0; ; index++ {
		if opts.OnStep != nil {
			opts.OnStep(index, step)
		}
		if step.Text != "" {
			if err := speaker.Speak(ctx, Utterance{Text: step.Text, Target: step.Target, Rate: Rate(speed)}); err != nil {
				player.Stop()
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("speak step %d: %w", index, err)
			}
		}
		if err := wait(ctx, time.Duration(float64(step.Delay)/speed)); err != nil {
			player.Stop()
			return err
		}

		next, ok, err := player.Complete()
		if err != nil {
			if errors.Is(err, ErrNotActive) {
				return ErrStopped
			}
			return err
		}
		if !ok {
			return nil
		}
		step = next
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WriterSpeaker prints utterances instead of voicing them.
type WriterSpeaker struct {
	W io.Writer
}

func (s WriterSpeaker) Speak(ctx context.Context, u Utterance) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(s.W, "[%s] %s\n", u.Target, u.Text)
	return err
}
