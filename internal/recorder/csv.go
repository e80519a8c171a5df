package recorder

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/Indra-jith/failure-aware-vision/internal/trust"
)

// #region csv

// ExportTickCSV renders the buffered tick log: one header row, one row per
// tick in tick order, reliability at 3 fractional digits, anomaly and
// integral at 6.
func (r *Recorder) ExportTickCSV() []byte {
	return EncodeTickCSV(r.Ticks())
}

// ExportExcursionCSV renders the buffered excursion log.
func (r *Recorder) ExportExcursionCSV() []byte {
	return EncodeExcursionCSV(r.Excursions())
}

// Export produces both byte streams in one call.
func (r *Recorder) Export() (tickCSV, excursionCSV []byte) {
	return r.ExportTickCSV(), r.ExportExcursionCSV()
}

// EncodeTickCSV is the pure rendering half of ExportTickCSV, split out so
// replay runs can produce byte-identical CSVs from a bare snapshot slice
// without a live Recorder.
func EncodeTickCSV(ticks []trust.TickSnapshot) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"timestamp", "reliability", "policy_state", "anomaly", "anomaly_integral"})
	for _, t := range ticks {
		_ = w.Write([]string{
			formatFixed(t.Timestamp, 3),
			formatFixed(t.Reliability, 3),
			t.Policy.String(),
			formatFixed(t.Anomaly, 6),
			formatFixed(t.AnomalyIntegral, 6),
		})
	}
	w.Flush()
	return buf.Bytes()
}

// EncodeExcursionCSV is the pure rendering half of ExportExcursionCSV.
func EncodeExcursionCSV(excursions []trust.ExcursionEvent) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"start_ts", "end_ts", "duration_s", "min_reliability", "dominant_cause", "peak_anomaly"})
	for _, e := range excursions {
		_ = w.Write([]string{
			formatFixed(e.StartTS, 3),
			formatFixed(e.EndTS, 3),
			formatFixed(e.EndTS-e.StartTS, 3),
			formatFixed(e.MinReliability, 3),
			e.DominantCause.String(),
			formatFixed(e.PeakAnomaly, 6),
		})
	}
	w.Flush()
	return buf.Bytes()
}

func formatFixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// #endregion csv
