package recorder

// #region config

// Config holds the buffering limits: a bounded ring of tick snapshots
// (reference capacity ~10 min at 30 Hz) and an excursion log retained
// without eviction up to a configured cap.
type Config struct {
	TickCapacity      int
	ExcursionCapacity int
}

// DefaultConfig returns the reference capacities.
func DefaultConfig() Config {
	return Config{
		TickCapacity:      18000,
		ExcursionCapacity: 1024,
	}
}

// #endregion config
