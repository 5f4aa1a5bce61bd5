//go:build amd64

package device

import "golang.org/x/sys/cpu"

func init() {
	// CMPXCHG is baseline on x86-64; SSE2 is used as a proxy that the
	// feature table has been populated.
	hostAtomics = cpu.X86.HasSSE2
	initCapabilities()
}
