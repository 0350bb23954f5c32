package flow

import (
	"context"
	"encoding/gob"
	"os"

	"github.com/pkg/errors"

	"github.com/askiada/go-flow/pkg/flow/model"
)

// Checkpoint is invoked with a node right after its training completed. A
// returned non-empty mapping is merged into the flow's metadata store,
// overriding existing keys.
type Checkpoint func(node model.Node) (map[string]any, error)

// BroadcastCheckpoints expands a single checkpoint to one entry per node.
func BroadcastCheckpoints(cp Checkpoint, n int) []Checkpoint {
	checkpoints := make([]Checkpoint, n)
	for i := range checkpoints {
		checkpoints[i] = cp
	}

	return checkpoints
}

// TrainWithCheckpoints trains the flow like Train and additionally invokes
// checkpoints[i] once node #i finished its training. Nil entries are no-ops.
//
// A failing checkpoint aborts the run with a plain wrapped error naming the
// node index. Checkpoints run caller code after the node's training already
// completed, so crash recovery does not wrap them and no dump is written.
func (f *Flow) TrainWithCheckpoints(ctx context.Context, sources []model.Source, checkpoints []Checkpoint) error {
	if checkpoints == nil {
		return errors.Wrap(ErrInvalidArgument, "checkpoints must be set")
	}
	if len(checkpoints) != len(f.nodes) {
		return errors.Wrapf(ErrCountMismatch, "%d checkpoints specified, %d needed", len(checkpoints), len(f.nodes))
	}

	return f.train(ctx, sources, checkpoints)
}

func (f *Flow) runCheckpoint(checkpoints []Checkpoint, i int) error {
	if checkpoints == nil || checkpoints[i] == nil {
		return nil
	}

	patch, err := checkpoints[i](f.nodes[i])
	if err != nil {
		return errors.Wrapf(err, "checkpoint for node #%d", i)
	}
	if len(patch) > 0 {
		f.meta.Merge(patch)
	}

	return nil
}

// SaveCheckpoint returns a checkpoint that gob-dumps the trained node to the
// given file, so it can be reloaded and inspected in a later session. With
// stopTraining set, the node's open training phase is closed before the dump.
//
// The node's concrete type must be registered with gob.Register.
func SaveCheckpoint(path string, stopTraining bool) Checkpoint {
	return func(node model.Node) (map[string]any, error) {
		if stopTraining {
			if _, err := node.StopTraining(); err != nil {
				return nil, errors.Wrap(err, "unable to stop training before saving")
			}
		}

		file, err := os.Create(path)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to create checkpoint file %s", path)
		}
		defer file.Close()

		if err := gob.NewEncoder(file).Encode(&node); err != nil {
			return nil, errors.Wrapf(err, "unable to encode node to %s", path)
		}

		return nil, nil
	}
}

// LoadNode reads back a node written by SaveCheckpoint.
func LoadNode(path string) (model.Node, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open checkpoint file %s", path)
	}
	defer file.Close()

	var node model.Node
	if err := gob.NewDecoder(file).Decode(&node); err != nil {
		return nil, errors.Wrapf(err, "unable to decode node from %s", path)
	}

	return node, nil
}
