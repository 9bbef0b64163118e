package sim

import "time"

// loopState tracks auto-play: either stopped, or playing with the time of
// the last step request.
type loopState struct {
	playing  bool
	lastStep time.Time
}

// update reports whether a step is due and, if so, advances lastStep to now.
// At most one step fires per call no matter how many intervals have elapsed;
// there is no catch-up burst after a stall.
func (l *loopState) update(now time.Time, interval time.Duration) bool {
	if !l.playing {
		return false
	}
	if now.Sub(l.lastStep) >= interval {
		l.lastStep = now
		return true
	}
	return false
}

func (l *loopState) start(now time.Time) {
	l.playing = true
	l.lastStep = now
}

func (l *loopState) stop() {
	l.playing = false
}
