package attendance

// Metrics are the fields derived from a check-in/check-out pair.
type Metrics struct {
	DelayMinutes     int
	ExtraTimeMinutes int
	TotalHours       float64
	OTHours          float64
}

// Zero reports whether every derived field is zero, the degraded result
// returned for inverted time ranges and missing shift configuration.
func (m Metrics) Zero() bool {
	return m.DelayMinutes == 0 && m.ExtraTimeMinutes == 0 && m.TotalHours == 0 && m.OTHours == 0
}
