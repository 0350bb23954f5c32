package measure

import "time"

// Measure collects one metric per node of a flow.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric accumulates training figures for one node.
type Metric interface {
	AddPhase(elapsed time.Duration)
	AddSamples(n int64)
	SetTrainDuration(elapsed time.Duration)
	TrainDuration() time.Duration
	Phases() int
	Samples() int64
	AVGPhaseDuration() time.Duration
}
