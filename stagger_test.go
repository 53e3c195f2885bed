package scrollstage

import "testing"

func TestStaggerDelay(t *testing.T) {
	tests := []struct {
		index, n int
		want     float64
	}{
		{0, 4, 0},
		{1, 4, 0.025},
		{3, 4, 0.075},
		{0, 0, 0},
		{5, -1, 0},
	}
	for _, tt := range tests {
		assertNear(t, "delay", StaggerDelay(tt.index, tt.n, DefaultStaggerSpread), tt.want)
	}
}

func TestStaggeredProgressIndexZeroFollowsT(t *testing.T) {
	for _, tv := range []float64{0, 0.1, 0.33, 0.5, 0.99, 1} {
		assertNear(t, "index 0", StaggeredProgress(tv, 0, 8, DefaultStaggerSpread), tv)
	}
}

func TestStaggeredProgressValues(t *testing.T) {
	// index 3 of 4: delay 0.075.
	assertNear(t, "before delay", StaggeredProgress(0.05, 3, 4, DefaultStaggerSpread), 0)
	assertNear(t, "mid", StaggeredProgress(0.5, 3, 4, DefaultStaggerSpread), (0.5-0.075)/0.925)
	assertNear(t, "end", StaggeredProgress(1, 3, 4, DefaultStaggerSpread), 1)
}

func TestStaggeredProgressMonotonicInIndex(t *testing.T) {
	const n = 10
	for _, tv := range []float64{0.02, 0.2, 0.5, 0.8} {
		prev := 2.0
		for i := 0; i < n; i++ {
			v := StaggeredProgress(tv, i, n, DefaultStaggerSpread)
			if v > prev {
				t.Errorf("t=%v index %d: %v > previous %v", tv, i, v, prev)
			}
			prev = v
		}
	}
}

func TestStaggeredProgressClamped(t *testing.T) {
	for _, tv := range []float64{-1, 2} {
		for i := 0; i < 5; i++ {
			v := StaggeredProgress(tv, i, 5, DefaultStaggerSpread)
			if v < 0 || v > 1 {
				t.Errorf("t=%v index %d = %v out of [0,1]", tv, i, v)
			}
		}
	}
}

func TestStaggeredProgressDegenerateSpread(t *testing.T) {
	// A delay of 1 leaves no room; the result steps at t = 1.
	assertNear(t, "below", StaggeredProgress(0.99, 1, 2, 2), 0)
	assertNear(t, "at end", StaggeredProgress(1, 1, 2, 2), 1)
}
