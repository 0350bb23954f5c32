package measure

import (
	"sync"
	"time"
)

type DefaultMeasure struct {
	Nodes map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Nodes: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(name string) Metric {
	if mt, ok := m.Nodes[name]; ok {
		return mt
	}
	mt := &DefaultMetric{
		mu: &sync.Mutex{},
	}
	m.Nodes[name] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(name string) Metric {
	return m.Nodes[name]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	return m.Nodes
}

var _ Measure = (*DefaultMeasure)(nil)

type DefaultMetric struct {
	mu            *sync.Mutex
	phases        int
	phasesElapsed time.Duration
	samples       int64
	trainElapsed  time.Duration
}

func (mt *DefaultMetric) AddPhase(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.phases++
	mt.phasesElapsed += elapsed
}

func (mt *DefaultMetric) AddSamples(n int64) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.samples += n
}

func (mt *DefaultMetric) SetTrainDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.trainElapsed = elapsed
}

func (mt *DefaultMetric) TrainDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.trainElapsed
}

func (mt *DefaultMetric) Phases() int {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.phases
}

func (mt *DefaultMetric) Samples() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.samples
}

func (mt *DefaultMetric) AVGPhaseDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if mt.phases == 0 {
		return time.Duration(0)
	}

	return round(time.Duration(float64(mt.phasesElapsed) / float64(mt.phases)))
}

var _ Metric = (*DefaultMetric)(nil)

func round(d time.Duration) time.Duration {
	switch {
	case d > time.Second:
		d = d.Round(time.Second)
	case d > time.Millisecond:
		d = d.Round(time.Millisecond)
	case d > time.Microsecond:
		d = d.Round(time.Microsecond)
	}

	return d
}
