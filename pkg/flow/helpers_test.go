package flow_test

import (
	"encoding/gob"
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"

	"github.com/askiada/go-flow/pkg/flow/model"
)

func init() {
	gob.Register(&scaleNode{})
	gob.Register(&statsNode{})
	gob.Register(&failingNode{})
	gob.Register(&supervisedNode{})
}

var errBoom = errors.New("boom")

// scaleNode applies y = x*Factor + Offset. It is not trainable and exactly
// invertible.
type scaleNode struct {
	Factor float64
	Offset float64
	Dim    int
}

func newScaleNode(t *testing.T, factor, offset float64, dim int) *scaleNode {
	t.Helper()

	return &scaleNode{Factor: factor, Offset: offset, Dim: dim}
}

func (n *scaleNode) IsTrainable() bool         { return false }
func (n *scaleNode) IsTraining() bool          { return false }
func (n *scaleNode) RemainingTrainPhases() int { return 0 }
func (n *scaleNode) InputDim() int             { return n.Dim }
func (n *scaleNode) OutputDim() int            { return n.Dim }

func (n *scaleNode) Train(x model.Matrix, args ...model.Matrix) error {
	return model.ErrTrainingFinished
}

func (n *scaleNode) StopTraining() (model.TrainingStatus, error) {
	return model.StatusFinished, nil
}

func (n *scaleNode) Execute(x model.Matrix) (model.Matrix, error) {
	out := make(model.Matrix, len(x))
	for i, row := range x {
		outRow := make([]float64, len(row))
		for j, v := range row {
			outRow[j] = v*n.Factor + n.Offset
		}
		out[i] = outRow
	}

	return out, nil
}

func (n *scaleNode) Inverse(x model.Matrix) (model.Matrix, error) {
	out := make(model.Matrix, len(x))
	for i, row := range x {
		outRow := make([]float64, len(row))
		for j, v := range row {
			outRow[j] = (v - n.Offset) / n.Factor
		}
		out[i] = outRow
	}

	return out, nil
}

// statsNode standardises its input over two training phases (first pass
// collects the mean, second pass the spread) and projects the result onto the
// first Out columns.
type statsNode struct {
	In    int
	Out   int
	Phase int
	Count float64
	Sum   []float64
	SumSq []float64
	Mean  []float64
	Scale []float64
}

func newStatsNode(t *testing.T, in, out int) *statsNode {
	t.Helper()

	return &statsNode{In: in, Out: out}
}

func (n *statsNode) IsTrainable() bool { return true }
func (n *statsNode) IsTraining() bool  { return n.Phase < 2 }
func (n *statsNode) InputDim() int     { return n.In }
func (n *statsNode) OutputDim() int    { return n.Out }

func (n *statsNode) RemainingTrainPhases() int {
	if n.Phase >= 2 {
		return 0
	}

	return 2 - n.Phase
}

func (n *statsNode) Train(x model.Matrix, args ...model.Matrix) error {
	if n.Phase >= 2 {
		return model.ErrTrainingFinished
	}
	if x.Cols() != n.In {
		return errors.Errorf("expected %d columns, got %d", n.In, x.Cols())
	}

	if n.Sum == nil {
		n.Sum = make([]float64, n.In)
		n.SumSq = make([]float64, n.In)
	}

	for _, row := range x {
		for j, v := range row {
			if n.Phase == 0 {
				n.Sum[j] += v
			} else {
				n.SumSq[j] += (v - n.Mean[j]) * (v - n.Mean[j])
			}
		}
		if n.Phase == 0 {
			n.Count++
		}
	}

	return nil
}

func (n *statsNode) StopTraining() (model.TrainingStatus, error) {
	switch n.Phase {
	case 0:
		if n.Count == 0 {
			return model.StatusTraining, errors.New("no samples seen")
		}
		n.Mean = make([]float64, n.In)
		for j := range n.Mean {
			n.Mean[j] = n.Sum[j] / n.Count
		}
		n.Phase = 1

		return model.StatusPhaseClosed, nil
	case 1:
		n.Scale = make([]float64, n.In)
		for j := range n.Scale {
			sd := math.Sqrt(n.SumSq[j] / n.Count)
			if sd == 0 {
				sd = 1
			}
			n.Scale[j] = 1 / sd
		}
		n.Phase = 2

		return model.StatusFinished, nil
	}

	return model.StatusFinished, nil
}

func (n *statsNode) Execute(x model.Matrix) (model.Matrix, error) {
	// Executing a node closes any open training phase.
	for n.IsTraining() {
		if _, err := n.StopTraining(); err != nil {
			return nil, err
		}
	}
	if x.Cols() != n.In {
		return nil, errors.Errorf("expected %d columns, got %d", n.In, x.Cols())
	}

	out := make(model.Matrix, len(x))
	for i, row := range x {
		outRow := make([]float64, n.Out)
		for j := 0; j < n.Out; j++ {
			outRow[j] = (row[j] - n.Mean[j]) * n.Scale[j]
		}
		out[i] = outRow
	}

	return out, nil
}

// failingNode fails on demand during training or execution.
type failingNode struct {
	Dim       int
	FailTrain bool
	FailExec  bool
	Phase     int
}

func (n *failingNode) IsTrainable() bool { return true }
func (n *failingNode) IsTraining() bool  { return n.Phase < 1 }
func (n *failingNode) InputDim() int     { return n.Dim }
func (n *failingNode) OutputDim() int    { return n.Dim }

func (n *failingNode) RemainingTrainPhases() int {
	if n.Phase >= 1 {
		return 0
	}

	return 1
}

func (n *failingNode) Train(x model.Matrix, args ...model.Matrix) error {
	if n.Phase >= 1 {
		return model.ErrTrainingFinished
	}
	if n.FailTrain {
		return errBoom
	}

	return nil
}

func (n *failingNode) StopTraining() (model.TrainingStatus, error) {
	n.Phase = 1

	return model.StatusFinished, nil
}

func (n *failingNode) Execute(x model.Matrix) (model.Matrix, error) {
	if n.FailExec {
		return nil, errBoom
	}
	n.Phase = 1

	return x, nil
}

// supervisedNode records the extra training args forwarded to it.
type supervisedNode struct {
	Dim      int
	Phase    int
	Samples  int
	ArgsSeen int
}

func (n *supervisedNode) IsTrainable() bool { return true }
func (n *supervisedNode) IsTraining() bool  { return n.Phase < 1 }
func (n *supervisedNode) InputDim() int     { return n.Dim }
func (n *supervisedNode) OutputDim() int    { return n.Dim }

func (n *supervisedNode) RemainingTrainPhases() int {
	if n.Phase >= 1 {
		return 0
	}

	return 1
}

func (n *supervisedNode) Train(x model.Matrix, args ...model.Matrix) error {
	if n.Phase >= 1 {
		return model.ErrTrainingFinished
	}
	n.Samples += x.Rows()
	n.ArgsSeen += len(args)

	return nil
}

func (n *supervisedNode) StopTraining() (model.TrainingStatus, error) {
	if n.Phase >= 1 {
		return model.StatusFinished, nil
	}
	n.Phase = 1

	return model.StatusFinished, nil
}

func (n *supervisedNode) Execute(x model.Matrix) (model.Matrix, error) {
	n.Phase = 1

	return x, nil
}

func randomMatrix(t *testing.T, rnd *rand.Rand, rows, cols int) model.Matrix {
	t.Helper()

	out := make(model.Matrix, rows)
	for i := range out {
		row := make([]float64, cols)
		for j := range row {
			row[j] = rnd.NormFloat64()
		}
		out[i] = row
	}

	return out
}

func randomBatches(t *testing.T, rnd *rand.Rand, batches, rows, cols int) []model.Matrix {
	t.Helper()

	out := make([]model.Matrix, batches)
	for i := range out {
		out[i] = randomMatrix(t, rnd, rows, cols)
	}

	return out
}

// singlePassSource feeds the given batches through a channel, so the source
// cannot be rewound.
func singlePassSource(t *testing.T, batches ...model.Matrix) model.Source {
	t.Helper()

	c := make(chan model.Sample, len(batches))
	for _, b := range batches {
		c <- model.Sample{X: b}
	}
	close(c)

	return model.NewChanSource(c)
}
