package model

import "time"

// NodeInfo describes one position of a flow to observers.
type NodeInfo struct {
	Index     int
	Name      string
	InputDim  int
	OutputDim int
	Trainable bool
}

// FlowOption defines the interface for flow observers. An observer is
// registered at construction and is driven by the flow while the chain is
// assembled and trained.
type FlowOption interface {
	// New initialises the observer.
	New() error
	// PrepareNode runs when a node enters the chain, and again after every
	// committed mutation with the node's current position.
	PrepareNode(info *NodeInfo) error
	// OnTrainStart runs right before a node's training begins.
	OnTrainStart(info *NodeInfo) error
	// OnPhaseClosed runs every time one of a node's training phases is closed
	// during training.
	OnPhaseClosed(info *NodeInfo, phase int, elapsed time.Duration) error
	// OnNodeTrained runs after a node's training completed.
	OnNodeTrained(info *NodeInfo, samples int64, elapsed time.Duration) error
	// Finish runs after the whole training run is finished.
	Finish() error
}
