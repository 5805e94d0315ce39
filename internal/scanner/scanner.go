// Package scanner classifies keystroke streams as barcode-scanner input
// or manual typing. Hardware scanners emulate a keyboard but emit
// characters in a rapid burst terminated by Enter or Tab; humans type
// with much larger gaps between keys. The classifier is a small state
// machine driven entirely by timestamped events, so callers own the
// clock and the behavior is deterministic under test.
package scanner

import (
	"time"
)

// State of the classifier.
type State int

const (
	// StateIdle means no burst is in progress.
	StateIdle State = iota
	// StateBuffering means characters are accumulating in a candidate burst.
	StateBuffering
)

// Default thresholds, tuned for common USB HID scanners which emit
// keys well under 30ms apart.
const (
	DefaultInterKeyThreshold = 35 * time.Millisecond
	DefaultIdleTimeout       = 120 * time.Millisecond
	DefaultMinLength         = 4
)

// Config controls the classification thresholds.
type Config struct {
	// InterKeyThreshold is the maximum gap between consecutive keys for
	// the burst to still count as scanner input. A larger gap aborts the
	// burst as manual typing.
	InterKeyThreshold time.Duration
	// IdleTimeout is how long after the last key a burst without an
	// explicit terminator is finalized. Callers are expected to invoke
	// Tick once the timeout elapses.
	IdleTimeout time.Duration
	// MinLength is the minimum number of characters a finalized burst
	// must contain to be accepted as a barcode.
	MinLength int
}

func (c Config) withDefaults() Config {
	if c.InterKeyThreshold <= 0 {
		c.InterKeyThreshold = DefaultInterKeyThreshold
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
	if c.MinLength <= 0 {
		c.MinLength = DefaultMinLength
	}
	return c
}

// KeyEvent is a single timestamped keystroke.
type KeyEvent struct {
	Rune       rune
	Time       time.Time
	Terminator bool // Enter or Tab
}

// Scan is an accepted barcode read.
type Scan struct {
	Code       string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Classifier is the scan/type discrimination state machine. It is not
// safe for concurrent use; drive it from a single goroutine.
type Classifier struct {
	cfg     Config
	state   State
	buf     []rune
	started time.Time
	lastKey time.Time
}

// NewClassifier creates a classifier with zero-valued Config fields
// replaced by defaults.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg.withDefaults(), state: StateIdle}
}

// State reports the current classifier state.
func (c *Classifier) State() State {
	return c.state
}

// HandleKey feeds one keystroke into the machine. It returns a non-nil
// Scan when the event finalizes an accepted burst.
func (c *Classifier) HandleKey(ev KeyEvent) *Scan {
	switch c.state {
	case StateIdle:
		if ev.Terminator {
			return nil
		}
		c.state = StateBuffering
		c.buf = c.buf[:0]
		c.buf = append(c.buf, ev.Rune)
		c.started = ev.Time
		c.lastKey = ev.Time
		return nil

	case StateBuffering:
		if ev.Terminator {
			return c.finalize(ev.Time)
		}
		if ev.Time.Sub(c.lastKey) > c.cfg.InterKeyThreshold {
			// Gap too large: this is manual typing, not a scanner
			// burst. Discard and start over from this key.
			c.reset()
			return c.HandleKey(ev)
		}
		c.buf = append(c.buf, ev.Rune)
		c.lastKey = ev.Time
		return nil
	}
	return nil
}

// Tick advances the machine's notion of time without a keystroke. If a
// burst has been idle past the timeout it is finalized, matching
// scanners that do not send a terminator suffix. Returns a non-nil Scan
// when the timeout finalizes an accepted burst.
func (c *Classifier) Tick(now time.Time) *Scan {
	if c.state != StateBuffering {
		return nil
	}
	if now.Sub(c.lastKey) < c.cfg.IdleTimeout {
		return nil
	}
	return c.finalize(now)
}

// Flush forces finalization of any in-progress burst.
func (c *Classifier) Flush(now time.Time) *Scan {
	if c.state != StateBuffering {
		return nil
	}
	return c.finalize(now)
}

// Reset discards any in-progress burst and returns to Idle.
func (c *Classifier) Reset() {
	c.reset()
}

func (c *Classifier) finalize(now time.Time) *Scan {
	// Count keystrokes, not bytes; multi-byte runes are still one key each
	length := len(c.buf)
	code := string(c.buf)
	started := c.started
	c.reset()
	if length < c.cfg.MinLength {
		return nil
	}
	return &Scan{Code: code, StartedAt: started, FinishedAt: now}
}

func (c *Classifier) reset() {
	c.state = StateIdle
	c.buf = c.buf[:0]
}
