package util

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// TypeName returns a stable, human-readable name for t, including the
// package path for named types. Unnamed types fall back to their Go syntax.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Ptr {
		return "*" + TypeName(t.Elem())
	}
	if path := t.PkgPath(); path != "" {
		return path + "." + t.Name()
	}
	return t.String()
}

func MakeStrKey(keys ...any) string {
	newKeys := make([]string, 0, len(keys))
	for _, key := range keys {
		newKeys = append(newKeys, cast.ToString(key))
	}
	return strings.Join(newKeys, ":")
}

func ForEachMapBySort[V any](in map[string]V, iteratee func(key string, value V)) {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		iteratee(key, in[key])
	}
}

func ExecTime(name string, f func()) time.Duration {
	start := time.Now()
	f()
	elapsed := time.Since(start)
	fmt.Printf("[%s] exec.time: %v\n", name, elapsed)
	return elapsed
}
