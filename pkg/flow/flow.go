package flow

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/askiada/go-flow/internal/store"
	"github.com/askiada/go-flow/pkg/flow/model"
)

// Flow is a linear sequence of nodes. Data sent to the first node is
// successively processed by the following ones. The Flow drives training,
// execution and inverse execution (if defined) of the whole sequence.
type Flow struct {
	nodes    []model.Node
	log      zerolog.Logger
	verbose  bool
	recovery crashRecovery
	meta     *store.Store[string, any]
	opts     []model.FlowOption
}

// New creates a flow from an ordered sequence of nodes. For every adjacent
// pair whose outer dimensions are both known, the dimensions must match.
func New(nodes []model.Node, opts ...Option) (*Flow, error) {
	f := &Flow{
		log:  zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel),
		meta: store.New[string, any](),
	}
	for _, opt := range opts {
		opt(f)
	}

	if err := checkNodes(nodes); err != nil {
		return nil, err
	}
	f.nodes = append([]model.Node(nil), nodes...)

	for _, obs := range f.opts {
		if err := obs.New(); err != nil {
			return nil, errors.Wrap(err, "unable to apply flow option")
		}
	}
	if err := f.prepareObservers(); err != nil {
		return nil, err
	}

	return f, nil
}

// Meta is the flow's metadata store. Checkpoint callbacks patch it with the
// mappings they return.
func (f *Flow) Meta() *store.Store[string, any] {
	return f.meta
}

// Logger returns the logger warnings and progress are reported on.
func (f *Flow) Logger() zerolog.Logger {
	return f.log
}

func (f *Flow) String() string {
	names := make([]string, 0, len(f.nodes))
	for _, n := range f.nodes {
		names = append(names, nodeName(n))
	}

	return "[" + strings.Join(names, ", ") + "]"
}

func (f *Flow) nodeInfo(i int) *model.NodeInfo {
	n := f.nodes[i]

	return &model.NodeInfo{
		Index:     i,
		Name:      nodeName(n),
		InputDim:  n.InputDim(),
		OutputDim: n.OutputDim(),
		Trainable: n.IsTrainable(),
	}
}

// prepareObservers re-announces every node position to the registered
// observers. It runs at construction and after every committed mutation.
func (f *Flow) prepareObservers() error {
	for _, obs := range f.opts {
		for i := range f.nodes {
			if err := obs.PrepareNode(f.nodeInfo(i)); err != nil {
				return errors.Wrapf(err, "unable to prepare node #%d", i)
			}
		}
	}

	return nil
}

func nodeName(n model.Node) string {
	return fmt.Sprintf("%T", n)
}

// checkDimensions fails when both dimensions are known and different.
func checkDimensions(out, in int) error {
	if out != 0 && in != 0 && out != in {
		return errors.Wrapf(ErrDimensionMismatch, "%d != %d", out, in)
	}

	return nil
}

// checkNodes validates a prospective node sequence: no nil entries, and
// consistent dimensions across every adjacent pair.
func checkNodes(nodes []model.Node) error {
	for i, n := range nodes {
		if n == nil {
			return errors.Wrapf(ErrTypeMismatch, "flow item #%d is nil", i)
		}
	}
	for i := 1; i < len(nodes); i++ {
		err := checkDimensions(nodes[i-1].OutputDim(), nodes[i].InputDim())
		if err != nil {
			return errors.Wrapf(err, "between node #%d and node #%d", i-1, i)
		}
	}

	return nil
}
