package supervisor

import "fmt"

// #region source-mode

// SourceMode is the closed enum governing where a driver loop pulls frames
// from. The tick contract is indifferent to it; it exists purely for
// cmd/supervisor's frame loop to act on.
type SourceMode int

const (
	SourceModeLive SourceMode = iota
	SourceModeReplay
	SourceModeSynthetic
)

func (m SourceMode) String() string {
	switch m {
	case SourceModeLive:
		return "live"
	case SourceModeReplay:
		return "replay"
	case SourceModeSynthetic:
		return "synthetic"
	default:
		return "unknown"
	}
}

// ParseSourceMode converts a CLI/config string into a SourceMode.
func ParseSourceMode(s string) (SourceMode, error) {
	switch s {
	case "live":
		return SourceModeLive, nil
	case "replay":
		return SourceModeReplay, nil
	case "synthetic":
		return SourceModeSynthetic, nil
	default:
		return 0, fmt.Errorf("supervisor: unknown source mode %q", s)
	}
}

// #endregion source-mode
