package teaview

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/quill/sched"
)

// TimerMsg delivers a session timer back to the model on the tea loop.
type TimerMsg struct {
	Handle sched.Handle
}

// timers turns session timers into tea.Tick commands. Commands armed while
// handling a message are returned from that Update call.
type timers struct {
	loop *sched.Loop
	cmds []tea.Cmd
}

func newTimers(clock sched.Clock) *timers {
	t := &timers{}
	t.loop = sched.NewLoop(clock, func(h sched.Handle, d time.Duration) {
		t.cmds = append(t.cmds, tea.Tick(d, func(time.Time) tea.Msg {
			return TimerMsg{Handle: h}
		}))
	})
	return t
}

func (t *timers) drain() tea.Cmd {
	if len(t.cmds) == 0 {
		return nil
	}
	cmds := t.cmds
	t.cmds = nil
	return tea.Batch(cmds...)
}
