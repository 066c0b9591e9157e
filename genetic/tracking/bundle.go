package tracking

// MetricBundle is a generic container for named metrics
// Keys are metric names, values are float64 measurements
type MetricBundle map[string]float64

// Standard metric keys (conventions)
const (
	MetricFitness    = "fitness"
	MetricTicksAlive = "ticks_alive"
	MetricDodges     = "dodges"
	MetricCrashes    = "crashes"
)

// Get returns metric value or default if not present
func (b MetricBundle) Get(key string, defaultVal float64) float64 {
	if v, ok := b[key]; ok {
		return v
	}
	return defaultVal
}
