//go:build arm64

package device

import "golang.org/x/sys/cpu"

func init() {
	// Without LSE, atomics are LL/SC loops which degrade badly under the
	// contention a flat grid produces.
	hostAtomics = cpu.ARM64.HasATOMICS
	initCapabilities()
}
