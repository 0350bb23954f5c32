package flow

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrDimensionMismatch is returned when the dimensions of two adjacent
	// nodes conflict. The offending mutation is never committed.
	ErrDimensionMismatch = errors.New("adjacent node dimensions mismatch")
	// ErrTypeMismatch is returned when an operand of a container operation is
	// not a valid flow item.
	ErrTypeMismatch = errors.New("invalid flow operand")
	// ErrInvalidArgument is returned when a training input has the wrong shape.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCountMismatch is returned when the number of sources or checkpoints
	// does not match the flow length.
	ErrCountMismatch = errors.New("count mismatch")
	// ErrNonRewindableSource is returned when a node with multiple training
	// phases receives a single-pass source.
	ErrNonRewindableSource = errors.New("source cannot be rewound")
	// ErrMissingSource is returned when a node that is mid-training receives
	// no data source.
	ErrMissingSource = errors.New("no source for a training node")
	// ErrInverseUnsupported is returned when inverse execution reaches a node
	// without an inverse transform.
	ErrInverseUnsupported = errors.New("node does not support inverse")
)

// NodeError wraps a failure raised by a node during training, execution or
// inverse execution. It carries the position and type of the failing node and,
// when crash recovery is armed, the location of the crash dump.
//
// The original failure is available through Unwrap and Cause.
type NodeError struct {
	Index    int
	NodeType string
	DumpPath string
	cause    error
}

func (e *NodeError) Error() string {
	msg := fmt.Sprintf("node #%d (%s): %v", e.Index, e.NodeType, e.cause)
	if e.DumpPath != "" {
		msg += fmt.Sprintf(", a crash dump is available on %q", e.DumpPath)
	}

	return msg
}

func (e *NodeError) Unwrap() error {
	return e.cause
}

// Cause implements the causer interface of github.com/pkg/errors.
func (e *NodeError) Cause() error {
	return e.cause
}
