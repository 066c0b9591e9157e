package tracking

// Collector accumulates metrics over one agent's run
type Collector struct {
	ticks int
	sums  map[string]float64
	peaks map[string]float64
}

// NewCollector creates a reusable collector
func NewCollector() *Collector {
	return &Collector{
		sums:  make(map[string]float64),
		peaks: make(map[string]float64),
	}
}

// Collect records metrics for a single tick
func (c *Collector) Collect(metrics MetricBundle) {
	c.ticks++
	for key, value := range metrics {
		c.Add(key, value)
	}
}

// Add accumulates an event outside tick accounting
// The first Add of a key seeds its peak, so a sum that never rises above zero keeps its real maximum
func (c *Collector) Add(key string, delta float64) {
	c.sums[key] += delta
	sum := c.sums[key]
	if peak, ok := c.peaks[key]; !ok || sum > peak {
		c.peaks[key] = sum
	}
}

// Sum returns the running total of one metric
func (c *Collector) Sum(key string) float64 {
	return c.sums[key]
}

// Finalize returns accumulated metrics
// Every sum is reported under its own key, running maxima under PeakKey(key)
func (c *Collector) Finalize() MetricBundle {
	result := make(MetricBundle, 1+2*len(c.sums))
	result[MetricTicksAlive] = float64(c.ticks)

	for key, sum := range c.sums {
		result[key] = sum
	}
	for key, peak := range c.peaks {
		result[PeakKey(key)] = peak
	}

	return result
}

// PeakKey names the running maximum of a metric in a finalized bundle
func PeakKey(key string) string {
	return "peak_" + key
}

// Reset clears accumulated state for reuse
func (c *Collector) Reset() {
	c.ticks = 0
	clear(c.sums)
	clear(c.peaks)
}
