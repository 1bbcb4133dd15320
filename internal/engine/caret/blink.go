package caret

import "time"

// Blink timing defaults. The ticker flips the phase at the blink period,
// but only once input has been quiet for the quiescent window, so the
// caret never flickers while the user is actively typing.
const (
	DefaultBlinkPeriod     = 700 * time.Millisecond
	DefaultQuiescentWindow = 500 * time.Millisecond
)

// shouldToggle reports whether the blink phase may flip: at least the
// quiescent window must have elapsed since the last interrupt.
func shouldToggle(now, lastInterrupt time.Time, quiescent time.Duration) bool {
	return now.Sub(lastInterrupt) >= quiescent
}

// Focus marks the caret focused, resets the blink phase to visible, and
// timestamps the interrupt.
func (c *Caret) Focus() {
	c.mu.Lock()
	c.focused = true
	c.markInterruptLocked()
	c.mu.Unlock()
	c.notifyChange()
}

// Blur marks the caret unfocused. An unfocused caret renders nothing.
func (c *Caret) Blur() {
	c.mu.Lock()
	c.focused = false
	c.mu.Unlock()
	c.notifyChange()
}

// Focused reports whether the caret currently has focus.
func (c *Caret) Focused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focused
}

// markInterruptLocked resets the blink phase to visible and records the
// interrupt time. Every user-driven operation counts as an interrupt.
func (c *Caret) markInterruptLocked() {
	c.blinkOn = true
	c.lastInterrupt = c.now()
}

func (c *Caret) blinkLoop() {
	for {
		select {
		case <-c.done:
			return
		case now := <-c.ticker.C:
			if c.tick(now) {
				c.notifyChange()
			}
		}
	}
}

// tick advances the blink animation. It returns true when the phase
// changed and observers need a redraw.
func (c *Caret) tick(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.focused {
		return false
	}
	if !shouldToggle(now, c.lastInterrupt, c.quiescent) {
		// Inside the quiescent window the caret stays visible.
		if !c.blinkOn {
			c.blinkOn = true
			return true
		}
		return false
	}
	c.blinkOn = !c.blinkOn
	return true
}

// Render returns the caret's own markup marker: empty when unfocused,
// otherwise a glyph whose phase attribute alternates with the blink state.
func (c *Caret) Render() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderLocked()
}

func (c *Caret) renderLocked() string {
	if !c.focused {
		return ""
	}
	phase := "on"
	if !c.blinkOn {
		phase = "off"
	}
	return `<mo data-caret="` + phase + `">│</mo>`
}
