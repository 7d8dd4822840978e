package debug

import (
	"fmt"
	"runtime"
	"strings"
)

const maxStackDepth = 32

// Stack formats the calling goroutine's stack, skipping the innermost
// skip frames and runtime internals.
func Stack(skip int) []byte {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return []byte(sb.String())
}
