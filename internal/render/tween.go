package render

import "time"

// Tween drives entrance animation as a single scalar progress value with
// linear easing. No spring physics: rendered magnitudes are progress×target,
// so progress 0 draws nothing and progress 1 draws exact targets.
type Tween struct {
	Duration time.Duration
}

// DefaultTweenDuration matches the chart entrance timing.
const DefaultTweenDuration = 1200 * time.Millisecond

// Progress maps elapsed time to [0,1].
func (t Tween) Progress(elapsed time.Duration) float64 {
	d := t.Duration
	if d <= 0 {
		d = DefaultTweenDuration
	}
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= d {
		return 1
	}
	return float64(elapsed) / float64(d)
}

// Lerp scales a target magnitude by progress, clamping progress to [0,1].
func Lerp(progress, target float64) float64 {
	if progress <= 0 {
		return 0
	}
	if progress >= 1 {
		return target
	}
	return progress * target
}
