//go:build !amd64 && !arm64

package device

func init() {
	hostAtomics = false
	initCapabilities()
}
