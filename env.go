package serde

import "runtime"

// Env captures the capabilities of the hosting runtime that strategy
// selection depends on. The codegen flag is explicit rather than probed at
// call time so restricted targets (or tests) can pin it.
type Env struct {
	// Codegen reports whether runtime code generation is available for
	// serializer construction (sonic's JIT engine).
	Codegen bool
}

// DetectEnv returns the capabilities of the current platform.
func DetectEnv() Env {
	return Env{Codegen: codegenSupported()}
}

func codegenSupported() bool {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		return runtime.GOOS != "js" && runtime.GOOS != "wasip1"
	default:
		return false
	}
}
