package flow

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-flow/internal/progress"
	"github.com/askiada/go-flow/pkg/flow/model"
)

// Train trains all trainable nodes in the flow, in order.
//
// sources holds one data source per node. A nil entry skips the node, unless
// the node is mid-training, which is an error. Samples presented to node i
// are first filtered through the already-trained nodes 0..i-1. A node with
// more than one training phase has its source drained once per phase, with
// the phase closed and the source rewound in between, so such a node
// requires a rewindable source.
//
// The training phase of the last node is closed explicitly once every node
// has been processed: intermediate nodes close their final phase when they
// are executed upon, but the last node never is.
func (f *Flow) Train(ctx context.Context, sources []model.Source) error {
	return f.train(ctx, sources, nil)
}

// TrainMatrix trains the flow with one bulk batch broadcast to every node.
func (f *Flow) TrainMatrix(ctx context.Context, x model.Matrix) error {
	sources := make([]model.Source, len(f.nodes))
	for i := range sources {
		sources[i] = model.NewMatrixSource(x)
	}

	return f.train(ctx, sources, nil)
}

func (f *Flow) train(ctx context.Context, sources []model.Source, checkpoints []Checkpoint) error {
	if err := f.checkSources(sources); err != nil {
		return err
	}

	tracker := progress.New(10 * time.Second)

	for i := range f.nodes {
		info := f.nodeInfo(i)
		for _, obs := range f.opts {
			if err := obs.OnTrainStart(info); err != nil {
				return errors.Wrapf(err, "observer failed before training node #%d", i)
			}
		}
		if f.verbose {
			f.log.Info().Int("node", i).Str("type", info.Name).Msg("training node")
		}

		start := time.Now()
		samples, err := f.trainNode(ctx, sources[i], i, tracker)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		for _, obs := range f.opts {
			if err := obs.OnNodeTrained(info, samples, elapsed); err != nil {
				return errors.Wrapf(err, "observer failed after training node #%d", i)
			}
		}
		if err := f.runCheckpoint(checkpoints, i); err != nil {
			return err
		}
		if f.verbose {
			f.log.Info().
				Int("node", i).
				Int64("samples", samples).
				Dur("elapsed", elapsed).
				Float64("rate", tracker.Rate()).
				Msg("training finished")
		}
	}

	if err := f.closeLastNode(); err != nil {
		return err
	}

	for _, obs := range f.opts {
		if err := obs.Finish(); err != nil {
			return errors.Wrap(err, "unable to finish flow option")
		}
	}

	return nil
}

// checkSources validates the data sources before any training begins, so a
// rejected call has no side effects.
func (f *Flow) checkSources(sources []model.Source) error {
	if sources == nil {
		return errors.Wrap(ErrInvalidArgument, "sources must be a sequence of data sources or a bulk batch")
	}
	if len(sources) != len(f.nodes) {
		return errors.Wrapf(ErrCountMismatch, "%d data sources specified, %d needed", len(sources), len(f.nodes))
	}
	for i, src := range sources {
		if src == nil {
			continue
		}
		if f.nodes[i].RemainingTrainPhases() > 1 {
			if _, ok := src.(model.RewindableSource); !ok {
				return errors.Wrapf(ErrNonRewindableSource,
					"node #%d has multiple training phases but its source is single pass", i)
			}
		}
	}

	return nil
}

// trainNode drives one node through all its training phases.
func (f *Flow) trainNode(ctx context.Context, src model.Source, i int, tracker *progress.Tracker) (int64, error) {
	node := f.nodes[i]

	switch {
	case src != nil && !node.IsTrainable():
		// Attempted to train a node although it is not trainable. Warn and
		// continue with the next node.
		f.log.Warn().Int("node", i).Msg("node is not trainable, you probably need a nil source for it, continuing anyway")

		return 0, nil
	case src == nil && node.IsTraining():
		return 0, errors.Wrapf(ErrMissingSource, "node #%d is training but received no data source", i)
	case src == nil:
		return 0, nil
	}

	var samples int64
	phase := 0
	phaseStart := time.Now()
	for {
		for {
			if err := ctx.Err(); err != nil {
				return samples, errors.Wrapf(err, "training node #%d", i)
			}

			sample, err := src.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return samples, f.escalate(err, i)
			}

			// Filter the batch through the already-trained part of the flow
			// before presenting it to the node.
			x := sample.X
			if i > 0 {
				x, err = f.executeSeq(x, i-1)
				if err != nil {
					return samples, err
				}
			}

			if err := node.Train(x, sample.Args...); err != nil {
				if errors.Is(err, model.ErrTrainingFinished) {
					// Attempted to train a node whose training phase is
					// already finished. Warn and continue with the next node.
					f.log.Warn().Int("node", i).Msg("node training phase already finished, continuing anyway")

					return samples, nil
				}

				return samples, f.escalate(err, i)
			}
			samples++
			tracker.Add(1)
		}

		if node.RemainingTrainPhases() <= 1 {
			// The final phase stays open. It is closed when the node is
			// executed upon, or explicitly for the last node of the flow.
			break
		}

		status, err := node.StopTraining()
		if err != nil {
			return samples, f.escalate(err, i)
		}
		if status == model.StatusFinished {
			break
		}

		info := f.nodeInfo(i)
		for _, obs := range f.opts {
			if err := obs.OnPhaseClosed(info, phase, time.Since(phaseStart)); err != nil {
				return samples, errors.Wrapf(err, "observer failed closing phase %d of node #%d", phase, i)
			}
		}
		phase++
		phaseStart = time.Now()

		rew, ok := src.(model.RewindableSource)
		if !ok {
			// checkSources rejects this arrangement up front; a node growing
			// extra phases mid-training still lands here.
			return samples, errors.Wrapf(ErrNonRewindableSource,
				"node #%d needs another pass but its source is single pass", i)
		}
		if err := rew.Rewind(); err != nil {
			return samples, f.escalate(err, i)
		}
	}

	return samples, nil
}

// closeLastNode closes the training phase of the last node, tolerating an
// already-finished state silently.
func (f *Flow) closeLastNode() error {
	if len(f.nodes) == 0 {
		return nil
	}
	last := len(f.nodes) - 1

	if f.verbose {
		f.log.Info().Int("node", last).Msg("closing the training phase of the last node")
	}

	if _, err := f.nodes[last].StopTraining(); err != nil {
		return f.escalate(err, last)
	}

	return nil
}
