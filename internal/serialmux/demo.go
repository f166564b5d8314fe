package serialmux

import "time"

// DefaultDemoRate is the synthetic line rate in lines per second, matching
// the camera's typical tracking output cadence.
const DefaultDemoRate = 50.0

// DemoPort implements SerialPorter by streaming generated lines at a fixed
// rate, so the tool can run without hardware attached.
type DemoPort struct {
	*pipePort
}

// NewDemoPort streams lines from next at lineRate lines per second. A rate
// <= 0 selects DefaultDemoRate. The producer is typically a synthetic
// telemetry generator.
func NewDemoPort(next func() string, lineRate float64) *DemoPort {
	if lineRate <= 0 {
		lineRate = DefaultDemoRate
	}
	interval := time.Duration(float64(time.Second) / lineRate)

	dp := &DemoPort{pipePort: newPipePort()}
	dp.startFeed(interval, func() (string, bool) {
		return next(), true
	})
	return dp
}
