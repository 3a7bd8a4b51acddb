package session

// ProgressPercent returns floor(100 * (TargetIndex+1) / TargetCount), capped at
// 100. A session with a zero target count reports 0.
//
// The result truncates toward zero. A requeue grows TargetCount, so the
// percentage can step back after one; the last card of the deck reads 100.
func (e *Engine) ProgressPercent() int {
	return progressPercent(e.state.TargetIndex, e.state.TargetCount)
}

func progressPercent(targetIndex, targetCount int) int {
	if targetCount <= 0 {
		return 0
	}
	p := 100 * (targetIndex + 1) / targetCount
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}
