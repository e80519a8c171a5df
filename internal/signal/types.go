package signal

import (
	"fmt"
	"image"
	"image/color"
)

// #region status

// VisionStatus is a closed, priority-ordered classification of a frame's
// usability. Higher members always win over lower ones on the same frame:
// Corrupted > Blank > Frozen > OK.
type VisionStatus int

const (
	StatusOK VisionStatus = iota
	StatusFrozen
	StatusBlank
	StatusCorrupted
)

// Priority returns the tie-break rank used by excursion attribution; higher
// wins. Mirrors the classification order in Analyze.
func (s VisionStatus) Priority() int {
	switch s {
	case StatusCorrupted:
		return 4
	case StatusBlank:
		return 3
	case StatusFrozen:
		return 2
	default:
		return 1
	}
}

func (s VisionStatus) String() string {
	switch s {
	case StatusOK:
		return "VISION_OK"
	case StatusFrozen:
		return "VISION_FROZEN"
	case StatusBlank:
		return "VISION_BLANK"
	case StatusCorrupted:
		return "VISION_CORRUPTED"
	default:
		return "VISION_UNKNOWN"
	}
}

// ParseVisionStatus accepts both the bare tag ("OK", "FROZEN") and the
// VISION_-prefixed form used by String(), for fixture and archive
// round-tripping.
func ParseVisionStatus(s string) (VisionStatus, error) {
	switch s {
	case "OK", "VISION_OK":
		return StatusOK, nil
	case "FROZEN", "VISION_FROZEN":
		return StatusFrozen, nil
	case "BLANK", "VISION_BLANK":
		return StatusBlank, nil
	case "CORRUPTED", "VISION_CORRUPTED":
		return StatusCorrupted, nil
	default:
		return 0, fmt.Errorf("signal: unknown vision status %q", s)
	}
}

// #endregion status

// #region metrics

// SignalMetrics bundles the four normalized [0,1] signal channels (1 = worst)
// alongside their pre-normalization raw values, retained for telemetry.
type SignalMetrics struct {
	Blur       float64
	Brightness float64
	Freeze     float64
	Entropy    float64

	RawLaplacianVariance float64
	RawMeanLuminance     float64
	RawMeanDiff          float64
	RawEntropyBits       float64
}

// #endregion metrics

// #region config

// Config holds the analyzer's calibration constants, exposed for
// per-deployment retuning.
type Config struct {
	BlurV0              float64 // Laplacian-variance reference for blur normalization
	BrightnessMid       float64 // mid-grey reference for the two-sided brightness penalty
	FreezeD0            float64 // inter-frame diff reference for freeze normalization
	EntropyH0           float64 // entropy reference (bits) for entropy normalization
	BlankMeanThreshold  float64 // mean luminance below this (0-255 scale) => BLANK
	FreezeDiffThreshold float64 // mean abs diff below this (0-255 scale) counts as "frozen" for one frame
	FreezeConfirmCount  int     // consecutive near-zero diffs required to confirm FROZEN
}

// DefaultConfig returns the reference calibration.
func DefaultConfig() Config {
	return Config{
		BlurV0:              100,
		BrightnessMid:       128,
		FreezeD0:            20,
		EntropyH0:           7.5,
		BlankMeanThreshold:  5.0,
		FreezeDiffThreshold: 1.0,
		FreezeConfirmCount:  5,
	}
}

// #endregion config

// #region frame

// Frame is an immutable luminance projection of a decoded image, carrying a
// monotonic timestamp in seconds. The core is colour-space-agnostic given
// this projection; decoding a concrete image.Image happens once, at
// construction.
type Frame struct {
	Width     int
	Height    int
	Luma      []byte // row-major, one byte per pixel, 0-255
	Timestamp float64
}

// ErrInvalidFrame is returned for a nil, zero-sized, or malformed frame.
// Analyze never retries; the caller decides whether to skip the tick.
var ErrInvalidFrame = fmt.Errorf("signal: invalid frame")

// NewFrame validates and constructs a Frame from a raw luminance buffer.
func NewFrame(width, height int, luma []byte, timestamp float64) (Frame, error) {
	if width <= 0 || height <= 0 {
		return Frame{}, fmt.Errorf("%w: zero-sized (%dx%d)", ErrInvalidFrame, width, height)
	}
	if len(luma) != width*height {
		return Frame{}, fmt.Errorf("%w: luma length %d != %dx%d", ErrInvalidFrame, len(luma), width, height)
	}
	return Frame{Width: width, Height: height, Luma: luma, Timestamp: timestamp}, nil
}

// NewFrameFromImage decodes an arbitrary image.Image into a luminance
// projection using the standard Rec. 601 luma weighting.
func NewFrameFromImage(img image.Image, timestamp float64) (Frame, error) {
	if img == nil {
		return Frame{}, fmt.Errorf("%w: nil image", ErrInvalidFrame)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return Frame{}, fmt.Errorf("%w: zero-sized image (%dx%d)", ErrInvalidFrame, w, h)
	}
	luma := make([]byte, w*h)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			luma[i] = gray.Y
			i++
		}
	}
	return NewFrame(w, h, luma, timestamp)
}

// at returns the luminance at (x, y), clamping to the border for
// convolution purposes.
func (f Frame) at(x, y int) byte {
	if x < 0 {
		x = 0
	}
	if x >= f.Width {
		x = f.Width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= f.Height {
		y = f.Height - 1
	}
	return f.Luma[y*f.Width+x]
}

// #endregion frame
