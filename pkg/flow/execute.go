package flow

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/askiada/go-flow/pkg/flow/model"
)

// Execute processes a batch through all nodes in the flow.
func (f *Flow) Execute(x model.Matrix) (model.Matrix, error) {
	return f.executeSeq(x, len(f.nodes)-1)
}

// ExecuteUpTo processes a batch through the nodes 0..upto included.
func (f *Flow) ExecuteUpTo(x model.Matrix, upto int) (model.Matrix, error) {
	if upto < 0 || upto >= len(f.nodes) {
		return nil, errors.Wrapf(ErrInvalidArgument, "index %d out of range [0, %d)", upto, len(f.nodes))
	}

	return f.executeSeq(x, upto)
}

// ExecuteSource processes every batch of the source through the whole flow
// and concatenates the outputs, in input order, into one combined result.
func (f *Flow) ExecuteSource(ctx context.Context, src model.Source) (model.Matrix, error) {
	return f.drainSource(ctx, src, f.Execute)
}

// Inverse processes a batch through all nodes backwards, calling the inverse
// transform of each node from the last down to the first.
//
// Note that this is not the forward execution of the reversed chain: it uses
// each node's inverse, always over the full sequence.
func (f *Flow) Inverse(x model.Matrix) (model.Matrix, error) {
	return f.inverseSeq(x)
}

// InverseSource applies Inverse to every batch of the source and concatenates
// the outputs in input order.
func (f *Flow) InverseSource(ctx context.Context, src model.Source) (model.Matrix, error) {
	return f.drainSource(ctx, src, f.Inverse)
}

func (f *Flow) executeSeq(x model.Matrix, upto int) (model.Matrix, error) {
	var err error
	for i := 0; i <= upto; i++ {
		x, err = f.nodes[i].Execute(x)
		if err != nil {
			return nil, f.escalate(err, i)
		}
	}

	return x, nil
}

func (f *Flow) inverseSeq(x model.Matrix) (model.Matrix, error) {
	for i := len(f.nodes) - 1; i >= 0; i-- {
		inv, ok := f.nodes[i].(model.InvertibleNode)
		if !ok {
			return nil, f.escalate(ErrInverseUnsupported, i)
		}
		out, err := inv.Inverse(x)
		if err != nil {
			return nil, f.escalate(err, i)
		}
		x = out
	}

	return x, nil
}

func (f *Flow) drainSource(ctx context.Context, src model.Source, apply func(model.Matrix) (model.Matrix, error)) (model.Matrix, error) {
	if src == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "source must be set")
	}

	var outs []model.Matrix
	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "unable to drain source")
		}

		sample, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "unable to read source")
		}

		out, err := apply(sample.X)
		if err != nil {
			return nil, err
		}
		outs = append(outs, out)
	}

	return model.ConcatRows(outs...), nil
}
