//go:build linux

package main

import "golang.org/x/sys/unix"

// pinToCore binds the calling thread to one CPU. Combined with
// runtime.LockOSThread this keeps the matching loop on a single core,
// which matters for cache locality and latency jitter, not correctness.
func pinToCore(core int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	return unix.SchedSetaffinity(0, &set)
}
