package measure

import (
	"fmt"
	"time"

	"github.com/askiada/go-flow/pkg/flow/model"
)

type flowMeasure struct {
	Measure
}

func (fm *flowMeasure) New() error {
	return nil
}

func (fm *flowMeasure) PrepareNode(info *model.NodeInfo) error {
	fm.AddMetric(metricName(info))

	return nil
}

func (fm *flowMeasure) OnTrainStart(info *model.NodeInfo) error {
	return nil
}

func (fm *flowMeasure) OnPhaseClosed(info *model.NodeInfo, phase int, elapsed time.Duration) error {
	fm.AddMetric(metricName(info)).AddPhase(elapsed)

	return nil
}

func (fm *flowMeasure) OnNodeTrained(info *model.NodeInfo, samples int64, elapsed time.Duration) error {
	mt := fm.AddMetric(metricName(info))
	mt.AddSamples(samples)
	mt.SetTrainDuration(elapsed)

	return nil
}

func (fm *flowMeasure) Finish() error {
	return nil
}

// FlowMeasure wraps a Measure into a flow observer recording per-node
// training durations, phase counts and sample counts.
func FlowMeasure(measure Measure) model.FlowOption {
	return &flowMeasure{measure}
}

// MetricName is the key a node's figures are recorded under.
func MetricName(info *model.NodeInfo) string {
	return metricName(info)
}

func metricName(info *model.NodeInfo) string {
	return fmt.Sprintf("#%d %s", info.Index, info.Name)
}
