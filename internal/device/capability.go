package device

import (
	"os"
	"strings"
)

// Package-level state, initialized once by the platform-specific init.
var (
	// hostAtomics is true if the CPU has native atomic read-modify-write.
	hostAtomics bool

	// hasOverride is true if KMEANS2D_DEVICE_ATOMICS was set to a valid value.
	hasOverride bool

	// atomicsEnabled is the effective capability after any override.
	atomicsEnabled bool
)

// initCapabilities is called from platform-specific init functions
// after CPU features are detected.
func initCapabilities() {
	atomicsEnabled = hostAtomics
	if v, ok := parseSwitch(os.Getenv("KMEANS2D_DEVICE_ATOMICS")); ok {
		hasOverride = true
		atomicsEnabled = v
	}
}

func parseSwitch(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "on", "true", "yes":
		return true, true
	case "0", "off", "false", "no":
		return false, true
	default:
		return false, false
	}
}

// HostSupportsAtomics returns true if the CPU provides native atomic adds.
func HostSupportsAtomics() bool {
	return hostAtomics
}

// AtomicsEnabled returns the effective atomic capability, honoring the
// environment override.
func AtomicsEnabled() bool {
	return atomicsEnabled
}

// IsOverridden returns true if KMEANS2D_DEVICE_ATOMICS was set.
func IsOverridden() bool {
	return hasOverride
}
