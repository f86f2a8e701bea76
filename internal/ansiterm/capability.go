package ansiterm

import (
	"sync"

	"github.com/muesli/termenv"
)

// ColorSupport is the runtime color capability a renderer should target.
type ColorSupport int

const (
	ColorSupportDetect ColorSupport = iota // sentinel: not yet resolved
	ColorSupportNone
	ColorSupportAnsi256
	ColorSupportTrueColor
)

var (
	capOnce   sync.Once
	capCached ColorSupport
	capMu     sync.Mutex
	capOverride *ColorSupport
)

// DetectColorSupport returns the process-wide cached color capability,
// probing the output's terminal profile via termenv on first access (§5
// "Process-wide cached color-capability detection"). An override installed
// with SetColorSupportOverride always wins and skips detection.
func DetectColorSupport() ColorSupport {
	capMu.Lock()
	override := capOverride
	capMu.Unlock()
	if override != nil {
		return *override
	}

	capOnce.Do(func() {
		capCached = fromTermenvProfile(termenv.ColorProfile())
	})
	return capCached
}

func fromTermenvProfile(p termenv.Profile) ColorSupport {
	switch p {
	case termenv.TrueColor:
		return ColorSupportTrueColor
	case termenv.ANSI256:
		return ColorSupportAnsi256
	case termenv.ANSI:
		return ColorSupportAnsi256
	default:
		return ColorSupportNone
	}
}

// SetColorSupportOverride forces DetectColorSupport to return support,
// implementing the `color_support_override` configuration option (§6).
// Passing nil clears the override and reverts to detection.
func SetColorSupportOverride(support *ColorSupport) {
	capMu.Lock()
	capOverride = support
	capMu.Unlock()
}

// ResetCapabilityCacheForTest clears the cached detection result and any
// override, as §9 "Cached process-wide state" requires a reset hook for
// tests.
func ResetCapabilityCacheForTest() {
	capMu.Lock()
	capOverride = nil
	capMu.Unlock()
	capOnce = sync.Once{}
	capCached = ColorSupportDetect
}
