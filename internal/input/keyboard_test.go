package input

import (
	"bufio"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestKeyboard returns a keyboard fed by the returned writer.
func newTestKeyboard(t *testing.T) (*Keyboard, *io.PipeWriter) {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	return NewKeyboard(bufio.NewReader(pr)), pw
}

// settle gives the reader goroutine time to move written bytes into the
// keyboard's channel before a poll.
func settle() { time.Sleep(50 * time.Millisecond) }

func TestKeyMapping(t *testing.T) {
	cases := []struct {
		name  string
		bytes string
		want  Kind
	}{
		{"enter", "\r", Confirm},
		{"newline", "\n", Confirm},
		{"j calibrates", "j", CalibrateRequest},
		{"capital J calibrates", "J", CalibrateRequest},
		{"escape cancels", "\x1b", Cancel},
		{"p toggles portrait", "p", TogglePortrait},
		{"q quits", "q", Quit},
		{"ctrl-c quits", "\x03", Quit},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kb, pw := newTestKeyboard(t)
			_, err := pw.Write([]byte(tc.bytes))
			require.NoError(t, err)
			settle()

			events := kb.poll(time.Now())
			require.Len(t, events, 1)
			assert.Equal(t, tc.want, events[0].Kind)
		})
	}
}

func TestArrowKeysAreHeldMovement(t *testing.T) {
	kb, pw := newTestKeyboard(t)
	_, err := pw.Write([]byte("\x1b[D\x1b[C"))
	require.NoError(t, err)
	settle()

	now := time.Now()
	events := kb.poll(now)
	assert.Empty(t, events, "arrow sequences never surface as discrete events")

	held := kb.held(now)
	assert.True(t, held.Left)
	assert.True(t, held.Right)

	held = kb.held(now.Add(keyHoldDuration + time.Millisecond))
	assert.False(t, held.Left, "held state decays once repeats stop")
	assert.False(t, held.Right)
}

func TestLetterMovementAndFire(t *testing.T) {
	kb, pw := newTestKeyboard(t)
	_, err := pw.Write([]byte("a d "))
	require.NoError(t, err)
	settle()

	now := time.Now()
	kb.poll(now)
	held := kb.held(now)
	assert.True(t, held.Left)
	assert.True(t, held.Right)
	assert.True(t, held.Fire)
}

func TestStreamCloseEmitsSingleQuit(t *testing.T) {
	kb, pw := newTestKeyboard(t)
	require.NoError(t, pw.Close())
	settle()

	events := kb.poll(time.Now())
	require.Len(t, events, 1)
	assert.Equal(t, Quit, events[0].Kind)

	assert.Empty(t, kb.poll(time.Now()), "only one quit per stream")
	assert.Empty(t, kb.poll(time.Now()))
}

func TestInterleavedEventsKeepOrder(t *testing.T) {
	kb, pw := newTestKeyboard(t)
	_, err := pw.Write([]byte("\rjq"))
	require.NoError(t, err)
	settle()

	events := kb.poll(time.Now())
	require.Len(t, events, 3)
	assert.Equal(t, Confirm, events[0].Kind)
	assert.Equal(t, CalibrateRequest, events[1].Kind)
	assert.Equal(t, Quit, events[2].Kind)
}
