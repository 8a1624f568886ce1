package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals deliver auto-repeat rather than key-up, so held state is inferred
// from the time since the last byte for that key.
const keyHoldDuration = 30 * time.Millisecond

// keyState tracks the last time each continuous-control key was seen.
type keyState struct {
	left  time.Time
	right time.Time
	fire  time.Time
}

// Keyboard reads raw terminal bytes on a background goroutine and turns them
// into logical events and held-key state once per frame.
type Keyboard struct {
	ch       chan byte
	state    keyState
	closed   bool
	quitSent bool
}

// NewKeyboard spawns a goroutine that drains r into the keyboard's channel.
// The goroutine exits when r returns an error (EOF, session closed).
func NewKeyboard(r *bufio.Reader) *Keyboard {
	k := &Keyboard{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(k.ch)
				return
			}
			k.ch <- b
		}
	}()
	return k
}

// poll drains all pending bytes, returning the frame's discrete events and
// updating held-key state. Non-blocking; an exhausted stream yields a single
// Quit event and empty polls after that.
func (k *Keyboard) poll(now time.Time) []Event {
	var events []Event
	var buf []byte

	if k.closed {
		return nil
	}

drain:
	for {
		select {
		case b, ok := <-k.ch:
			if !ok {
				k.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequences: ESC [ <code>. Arrows feed held movement state.
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C':
				k.state.right = now
			case 'D':
				k.state.left = now
			}
			i += 2
			continue
		}

		switch b {
		case '\n', '\r':
			events = append(events, Event{Kind: Confirm})
		case 'j', 'J':
			events = append(events, Event{Kind: CalibrateRequest})
		case '\x1b':
			events = append(events, Event{Kind: Cancel})
		case 'p', 'P':
			events = append(events, Event{Kind: TogglePortrait})
		case 'q', 'Q', '\x03':
			events = append(events, Event{Kind: Quit})
		case ' ':
			k.state.fire = now
		case 'a', 'A':
			k.state.left = now
		case 'd', 'D':
			k.state.right = now
		}
	}

	if k.closed && !k.quitSent {
		k.quitSent = true
		events = append(events, Event{Kind: Quit})
	}
	return events
}

// held reports the continuous-control state for this frame.
func (k *Keyboard) held(now time.Time) Held {
	return Held{
		Left:  now.Sub(k.state.left) < keyHoldDuration,
		Right: now.Sub(k.state.right) < keyHoldDuration,
		Fire:  now.Sub(k.state.fire) < keyHoldDuration,
	}
}
