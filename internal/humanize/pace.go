// Package humanize provides randomized pacing and input simulation so that
// browser interactions avoid fixed-interval automation patterns.
package humanize

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	// minKeyDelay and maxKeyDelay bound the per-character typing cadence.
	minKeyDelay = 50 * time.Millisecond
	maxKeyDelay = 200 * time.Millisecond

	// mouseMovePoints is the number of synthetic pointer-move events dispatched
	// per simulation.
	mouseMovePoints = 10
)

// mouseMoveScript dispatches synthetic mousemove events at pseudo-random
// viewport coordinates.
const mouseMoveScript = `(() => {
	for (let i = 0; i < %d; i++) {
		const x = Math.floor(Math.random() * window.innerWidth);
		const y = Math.floor(Math.random() * window.innerHeight);
		document.dispatchEvent(new MouseEvent('mousemove', {
			view: window, bubbles: true, cancelable: true,
			clientX: x, clientY: y,
		}));
	}
	return true;
})()`

// Pacer issues randomized delays and human-like input events.
type Pacer struct {
	rand *rand.Rand
}

// NewPacer creates a Pacer seeded from the current time.
func NewPacer() *Pacer {
	return &Pacer{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewPacerWithSeed creates a Pacer with a fixed seed, for deterministic tests.
func NewPacerWithSeed(seed int64) *Pacer {
	return &Pacer{rand: rand.New(rand.NewSource(seed))}
}

// sample returns a uniformly distributed duration in [min, max].
func (p *Pacer) sample(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(p.rand.Int63n(int64(max-min)))
}

// Delay blocks for a uniformly sampled duration in [min, max], or until the
// context is done.
func (p *Pacer) Delay(ctx context.Context, min, max time.Duration) {
	select {
	case <-time.After(p.sample(min, max)):
	case <-ctx.Done():
	}
}

// TypeHuman sends text to the element matched by sel one character at a time,
// sleeping a uniformly sampled 50-200ms between keystrokes.
func (p *Pacer) TypeHuman(ctx context.Context, sel string, text string) error {
	for _, ch := range text {
		if err := chromedp.Run(ctx, chromedp.SendKeys(sel, string(ch), chromedp.ByQuery)); err != nil {
			return fmt.Errorf("typing into %s: %w", sel, err)
		}
		p.Delay(ctx, minKeyDelay, maxKeyDelay)
	}
	return nil
}

// SimulateMouseMovement dispatches a fixed number of synthetic pointer-move
// events at random viewport coordinates. Side-effecting only.
func (p *Pacer) SimulateMouseMovement(ctx context.Context) error {
	var ok bool
	script := fmt.Sprintf(mouseMoveScript, mouseMovePoints)
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &ok)); err != nil {
		return fmt.Errorf("simulating mouse movement: %w", err)
	}
	return nil
}
