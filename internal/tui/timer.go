package tui

import "time"

// timerState tracks the current state of the countdown.
type timerState int

const (
	timerStopped timerState = iota
	timerRunning
	timerPaused
)

// timerModel is a pausable countdown, kept separate from display and storage.
type timerModel struct {
	now func() time.Time

	state     timerState
	planned   time.Duration
	startTime time.Time
	pausedAt  time.Time
	pauseGap  time.Duration
}

func newTimerModel(now func() time.Time) timerModel {
	if now == nil {
		now = time.Now
	}
	return timerModel{now: now}
}

func (t *timerModel) start(planned time.Duration) {
	t.state = timerRunning
	t.planned = planned
	t.startTime = t.now()
	t.pauseGap = 0
}

func (t *timerModel) stop() {
	t.state = timerStopped
	t.pauseGap = 0
}

func (t *timerModel) pause() {
	if t.state != timerRunning {
		return
	}
	t.state = timerPaused
	t.pausedAt = t.now()
}

func (t *timerModel) resume() {
	if t.state != timerPaused {
		return
	}
	t.pauseGap += t.now().Sub(t.pausedAt)
	t.state = timerRunning
}

func (t *timerModel) toggle() {
	switch t.state {
	case timerRunning:
		t.pause()
	case timerPaused:
		t.resume()
	}
}

func (t timerModel) running() bool { return t.state != timerStopped }
func (t timerModel) paused() bool  { return t.state == timerPaused }

// elapsed is the time counted so far, excluding pauses.
func (t timerModel) elapsed() time.Duration {
	switch t.state {
	case timerStopped:
		return 0
	case timerPaused:
		return t.pausedAt.Sub(t.startTime) - t.pauseGap
	}
	return t.now().Sub(t.startTime) - t.pauseGap
}

func (t timerModel) remaining() time.Duration {
	if t.state == timerStopped {
		return t.planned
	}
	return max(t.planned-t.elapsed(), 0)
}

// finished reports whether a running countdown has reached zero.
func (t timerModel) finished() bool {
	return t.state == timerRunning && t.remaining() == 0
}
