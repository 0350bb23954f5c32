package model

import "github.com/pkg/errors"

// ErrTrainingFinished is returned by a node's Train method when its training
// has already completed. The flow downgrades it to a warning and continues
// with the next node.
var ErrTrainingFinished = errors.New("node training already finished")

// TrainingStatus is the outcome of closing a node's training phase.
type TrainingStatus int

const (
	// StatusTraining means the node is still collecting data for an open phase.
	StatusTraining TrainingStatus = iota
	// StatusPhaseClosed means one phase was closed and at least one more remains.
	StatusPhaseClosed
	// StatusFinished means training is complete, or was already complete when
	// StopTraining was called.
	StatusFinished
)

func (s TrainingStatus) String() string {
	switch s {
	case StatusTraining:
		return "training"
	case StatusPhaseClosed:
		return "phase closed"
	case StatusFinished:
		return "finished"
	}

	return "unknown"
}

// Node is one stage in a flow. A node transforms fixed-width sample matrices
// and may be trainable in one or more phases.
//
// InputDim and OutputDim return 0 while the dimension is not yet known, for
// example before training. When both the output dimension of a node and the
// input dimension of its successor are known, they must match.
//
// A node that is mid-training must close its open phase the first time it is
// asked to Execute. StopTraining reports StatusFinished, without error, when
// there is nothing left to close.
type Node interface {
	// IsTrainable reports whether the node can be trained at all.
	IsTrainable() bool
	// IsTraining reports whether a training phase is currently open.
	IsTraining() bool
	// RemainingTrainPhases returns how many training phases are left,
	// including the currently open one. Zero once training is finished.
	RemainingTrainPhases() int
	// Train presents one batch of samples to the open phase. Extra args are
	// forwarded only to this node, which allows supervised training.
	Train(x Matrix, args ...Matrix) error
	// StopTraining closes the open training phase.
	StopTraining() (TrainingStatus, error)
	// Execute transforms a batch of samples.
	Execute(x Matrix) (Matrix, error)
	InputDim() int
	OutputDim() int
}

// InvertibleNode is a node whose transform can be reversed. Nodes that do not
// implement it signal that inverse execution is unsupported.
type InvertibleNode interface {
	Node
	Inverse(x Matrix) (Matrix, error)
}
