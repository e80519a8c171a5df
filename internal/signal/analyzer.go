package signal

import (
	"fmt"
	"math"
)

// #region analyzer

// Analyzer classifies frames. It is stateless except for an owned
// reference to the previous frame and a short diff history used to confirm
// FROZEN across consecutive frames.
type Analyzer struct {
	cfg         Config
	prev        *Frame
	diffHistory []float64
}

// NewAnalyzer constructs an Analyzer with the given calibration constants.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze classifies frame and returns its normalized signal channels.
// Classification rules are evaluated in strict priority order; first match
// wins: CORRUPTED > BLANK > FROZEN > OK.
func (a *Analyzer) Analyze(f Frame) (VisionStatus, SignalMetrics, error) {
	if f.Width <= 0 || f.Height <= 0 || len(f.Luma) != f.Width*f.Height {
		return StatusOK, SignalMetrics{}, fmt.Errorf("%w: %dx%d with %d luma bytes", ErrInvalidFrame, f.Width, f.Height, len(f.Luma))
	}

	rawMean := meanLuminance(f)
	rawLapVar := laplacianVariance(f)
	rawEntropy := shannonEntropyBits(f)

	metrics := SignalMetrics{
		RawMeanLuminance:     rawMean,
		RawLaplacianVariance: rawLapVar,
		RawEntropyBits:       rawEntropy,
		Brightness:           clamp01(math.Abs(rawMean-a.cfg.BrightnessMid) / a.cfg.BrightnessMid),
		Blur:                 1 - clamp01(rawLapVar/a.cfg.BlurV0),
		Entropy:              1 - clamp01(rawEntropy/a.cfg.EntropyH0),
	}

	dimsMismatch := a.prev != nil && (f.Width != a.prev.Width || f.Height != a.prev.Height)

	var haveDiff bool
	if a.prev != nil && !dimsMismatch {
		rawDiff := meanAbsDiff(f, *a.prev)
		metrics.RawMeanDiff = rawDiff
		metrics.Freeze = 1 - clamp01(rawDiff/a.cfg.FreezeD0)
		haveDiff = true

		a.diffHistory = append(a.diffHistory, rawDiff)
		if len(a.diffHistory) > a.cfg.FreezeConfirmCount {
			a.diffHistory = a.diffHistory[len(a.diffHistory)-a.cfg.FreezeConfirmCount:]
		}
	}

	var status VisionStatus
	switch {
	case dimsMismatch:
		status = StatusCorrupted
	case rawMean < a.cfg.BlankMeanThreshold:
		status = StatusBlank
	case haveDiff && len(a.diffHistory) == a.cfg.FreezeConfirmCount && allBelow(a.diffHistory, a.cfg.FreezeDiffThreshold):
		status = StatusFrozen
	default:
		status = StatusOK
	}

	prevCopy := f
	a.prev = &prevCopy
	if dimsMismatch {
		a.diffHistory = nil // continuity broken; restart the confirmation window
	}

	return status, metrics, nil
}

// Reset clears the analyzer's previous-frame and diff-history state.
func (a *Analyzer) Reset() {
	a.prev = nil
	a.diffHistory = nil
}

// #endregion analyzer

// #region math-helpers

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func allBelow(vals []float64, threshold float64) bool {
	for _, v := range vals {
		if v >= threshold {
			return false
		}
	}
	return true
}

func meanLuminance(f Frame) float64 {
	var sum int
	for _, b := range f.Luma {
		sum += int(b)
	}
	return float64(sum) / float64(len(f.Luma))
}

func meanAbsDiff(a, b Frame) float64 {
	var sum int
	n := len(a.Luma)
	for i := 0; i < n; i++ {
		d := int(a.Luma[i]) - int(b.Luma[i])
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return float64(sum) / float64(n)
}

// laplacianVariance convolves a discrete Laplacian kernel over the
// luminance image and returns the variance of the resulting response,
// the basis of the blur signal (a sharp image has a high-variance
// Laplacian response; a blurred one is nearly flat).
func laplacianVariance(f Frame) float64 {
	n := f.Width * f.Height
	resp := make([]float64, n)
	i := 0
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			center := float64(f.at(x, y))
			lap := -4*center +
				float64(f.at(x-1, y)) + float64(f.at(x+1, y)) +
				float64(f.at(x, y-1)) + float64(f.at(x, y+1))
			resp[i] = lap
			i++
		}
	}

	var mean float64
	for _, v := range resp {
		mean += v
	}
	mean /= float64(n)

	var variance float64
	for _, v := range resp {
		d := v - mean
		variance += d * d
	}
	return variance / float64(n)
}

// shannonEntropyBits computes the Shannon entropy, in bits, of the
// luminance histogram.
func shannonEntropyBits(f Frame) float64 {
	var hist [256]int
	for _, b := range f.Luma {
		hist[b]++
	}
	total := float64(len(f.Luma))
	var h float64
	for _, c := range hist {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		h -= p * math.Log2(p)
	}
	return h
}

// #endregion math-helpers
