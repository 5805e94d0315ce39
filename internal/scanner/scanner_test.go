package scanner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(c *Classifier, code string, start time.Time, gap time.Duration) (*Scan, time.Time) {
	now := start
	for _, r := range code {
		if scan := c.HandleKey(KeyEvent{Rune: r, Time: now}); scan != nil {
			return scan, now
		}
		now = now.Add(gap)
	}
	return nil, now
}

func TestClassifier_FastBurstWithEnter(t *testing.T) {
	c := NewClassifier(Config{})
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	scan, now := feed(c, "7501031311309", start, 8*time.Millisecond)
	require.Nil(t, scan)
	assert.Equal(t, StateBuffering, c.State())

	scan = c.HandleKey(KeyEvent{Terminator: true, Time: now})
	require.NotNil(t, scan)
	assert.Equal(t, "7501031311309", scan.Code)
	assert.Equal(t, start, scan.StartedAt)
	assert.Equal(t, StateIdle, c.State())
}

func TestClassifier_SlowTypingAborts(t *testing.T) {
	c := NewClassifier(Config{})
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	// 200ms between keys is human typing speed.
	scan, now := feed(c, "12345678", start, 200*time.Millisecond)
	require.Nil(t, scan)

	// Each slow key restarted the buffer, so only the last key is held
	// and the terminator yields nothing.
	scan = c.HandleKey(KeyEvent{Terminator: true, Time: now})
	assert.Nil(t, scan)
	assert.Equal(t, StateIdle, c.State())
}

func TestClassifier_IdleTimeoutFinalizes(t *testing.T) {
	c := NewClassifier(Config{})
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	_, now := feed(c, "4006381333931", start, 5*time.Millisecond)

	// Before the timeout nothing happens.
	assert.Nil(t, c.Tick(now.Add(50*time.Millisecond)))
	assert.Equal(t, StateBuffering, c.State())

	scan := c.Tick(now.Add(150 * time.Millisecond))
	require.NotNil(t, scan)
	assert.Equal(t, "4006381333931", scan.Code)
	assert.Equal(t, StateIdle, c.State())
}

func TestClassifier_ShortBurstDiscarded(t *testing.T) {
	c := NewClassifier(Config{MinLength: 6})
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	_, now := feed(c, "123", start, 5*time.Millisecond)
	scan := c.HandleKey(KeyEvent{Terminator: true, Time: now})
	assert.Nil(t, scan)
	assert.Equal(t, StateIdle, c.State())
}

func TestClassifier_MinLengthCountsKeystrokes(t *testing.T) {
	c := NewClassifier(Config{MinLength: 6})
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	// Five keystrokes of two-byte runes: ten bytes, but still below the
	// six-key minimum, so the burst is discarded.
	_, now := feed(c, "äöüäö", start, 5*time.Millisecond)
	scan := c.HandleKey(KeyEvent{Terminator: true, Time: now})
	assert.Nil(t, scan)

	// Six of the same keys clear the minimum.
	_, now = feed(c, "äöüäöü", now, 5*time.Millisecond)
	scan = c.HandleKey(KeyEvent{Terminator: true, Time: now})
	require.NotNil(t, scan)
	assert.Equal(t, "äöüäöü", scan.Code)
}

func TestClassifier_TerminatorWhileIdleIgnored(t *testing.T) {
	c := NewClassifier(Config{})
	scan := c.HandleKey(KeyEvent{Terminator: true, Time: time.Now()})
	assert.Nil(t, scan)
	assert.Equal(t, StateIdle, c.State())
}

func TestClassifier_FlushAndReset(t *testing.T) {
	c := NewClassifier(Config{})
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	_, now := feed(c, "9780201310054", start, 5*time.Millisecond)
	scan := c.Flush(now)
	require.NotNil(t, scan)
	assert.Equal(t, "9780201310054", scan.Code)

	_, _ = feed(c, "555", start, 5*time.Millisecond)
	c.Reset()
	assert.Equal(t, StateIdle, c.State())
	assert.Nil(t, c.Flush(now))
}

func TestClassifier_AbortRestartsFromSlowKey(t *testing.T) {
	c := NewClassifier(Config{})
	start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

	// A fast prefix followed by a long pause, then a fast suffix: the
	// prefix must be discarded and only the suffix kept.
	_, now := feed(c, "111", start, 5*time.Millisecond)
	now = now.Add(500 * time.Millisecond)
	scan, now := feed(c, "22223333", now, 5*time.Millisecond)
	require.Nil(t, scan)

	scan = c.HandleKey(KeyEvent{Terminator: true, Time: now})
	require.NotNil(t, scan)
	assert.Equal(t, "22223333", scan.Code)
}
