package scrollstage

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugOut receives all debug logging. Tests swap it for a buffer.
var debugOut io.Writer = os.Stderr

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	updateTime  time.Duration
	projectTime time.Duration
	sortTime    time.Duration
	submitTime  time.Duration
	faceCount   int
	drawCalls   int
}

// debugLog prints timing and draw-call stats.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.updateTime + stats.projectTime + stats.sortTime + stats.submitTime
	_, _ = fmt.Fprintf(debugOut,
		"[scrollstage] update: %v | project: %v | sort: %v | submit: %v | total: %v\n",
		stats.updateTime, stats.projectTime, stats.sortTime, stats.submitTime, total)
	_, _ = fmt.Fprintf(debugOut,
		"[scrollstage] faces: %d | draw calls: %d\n",
		stats.faceCount, stats.drawCalls)
}

// debugLogFrame reports phase transitions and hover changes between two
// consecutive frames. Steady frames print nothing.
func debugLogFrame(prev, cur FrameState) {
	if prev.ScalePhase != cur.ScalePhase || prev.Motion.Phase != cur.Motion.Phase {
		_, _ = fmt.Fprintf(debugOut,
			"[scrollstage] progress %.3f: scale %s -> %s | motion %s -> %s\n",
			cur.Progress, prev.ScalePhase, cur.ScalePhase, prev.Motion.Phase, cur.Motion.Phase)
	}
	if prev.Hovered != cur.Hovered {
		_, _ = fmt.Fprintf(debugOut, "[scrollstage] hover %q -> %q\n", prev.Hovered, cur.Hovered)
	}
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode; release callers skip
// this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("scrollstage debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(debugOut, "[scrollstage] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}
