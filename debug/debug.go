// Package debug gates targeted debug output behind SWEEP_DEBUG_*
// environment variables.
package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Iter   bool
	Seed   bool
	Unroll bool
	Path   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Iter = boolEnv("SWEEP_DEBUG_ITER")
	d.Seed = boolEnv("SWEEP_DEBUG_SEED")
	d.Unroll = boolEnv("SWEEP_DEBUG_UNROLL")
	d.Path = boolEnv("SWEEP_DEBUG_PATH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Iter() bool {
	return d.Iter
}
func Seed() bool {
	return d.Seed
}
func Unroll() bool {
	return d.Unroll
}
func Path() bool {
	return d.Path
}

func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
