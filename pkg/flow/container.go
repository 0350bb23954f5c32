package flow

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-flow/pkg/flow/model"
)

// Len returns the number of nodes in the flow.
func (f *Flow) Len() int {
	return len(f.nodes)
}

// Node returns the node at index i.
func (f *Flow) Node(i int) (model.Node, error) {
	if i < 0 || i >= len(f.nodes) {
		return nil, errors.Wrapf(ErrInvalidArgument, "index %d out of range [0, %d)", i, len(f.nodes))
	}

	return f.nodes[i], nil
}

// Nodes returns a copy of the node sequence, for iteration. Mutating the
// returned slice does not affect the flow.
func (f *Flow) Nodes() []model.Node {
	return append([]model.Node(nil), f.nodes...)
}

// Contains reports whether the node is part of the flow.
func (f *Flow) Contains(n model.Node) bool {
	for _, cur := range f.nodes {
		if cur == n {
			return true
		}
	}

	return false
}

// Sub returns a new flow over the nodes in [i, j). The sub-sequence is
// re-validated before the new flow is created.
func (f *Flow) Sub(i, j int) (*Flow, error) {
	if i < 0 || j > len(f.nodes) || i > j {
		return nil, errors.Wrapf(ErrInvalidArgument, "range [%d, %d) out of bounds", i, j)
	}

	return New(f.nodes[i:j])
}

// Set replaces the node at index i. On dimension mismatch the flow is left
// unchanged.
func (f *Flow) Set(i int, n model.Node) error {
	if i < 0 || i >= len(f.nodes) {
		return errors.Wrapf(ErrInvalidArgument, "index %d out of range [0, %d)", i, len(f.nodes))
	}
	if n == nil {
		return errors.Wrap(ErrTypeMismatch, "flow item is nil")
	}

	next := f.Nodes()
	next[i] = n

	return f.commit(next)
}

// Delete removes the node at index i. On dimension mismatch the flow is left
// unchanged.
func (f *Flow) Delete(i int) error {
	if i < 0 || i >= len(f.nodes) {
		return errors.Wrapf(ErrInvalidArgument, "index %d out of range [0, %d)", i, len(f.nodes))
	}

	next := f.Nodes()
	next = append(next[:i], next[i+1:]...)

	return f.commit(next)
}

// Insert inserts the node before index i.
func (f *Flow) Insert(i int, n model.Node) error {
	if i < 0 || i > len(f.nodes) {
		return errors.Wrapf(ErrInvalidArgument, "index %d out of range [0, %d]", i, len(f.nodes))
	}
	if n == nil {
		return errors.Wrap(ErrTypeMismatch, "flow item is nil")
	}

	next := make([]model.Node, 0, len(f.nodes)+1)
	next = append(next, f.nodes[:i]...)
	next = append(next, n)
	next = append(next, f.nodes[i:]...)

	return f.commit(next)
}

// Append adds the node at the end of the flow.
func (f *Flow) Append(n model.Node) error {
	return f.Insert(len(f.nodes), n)
}

// Extend appends a sequence of nodes. The whole extension is validated and
// committed atomically.
func (f *Flow) Extend(nodes []model.Node) error {
	if nodes == nil {
		return errors.Wrap(ErrTypeMismatch, "can only extend a flow with a sequence of nodes")
	}

	next := append(f.Nodes(), nodes...)

	return f.commit(next)
}

// Pop removes and returns the node at index i, or the last node for i = -1.
func (f *Flow) Pop(i int) (model.Node, error) {
	if i == -1 {
		i = len(f.nodes) - 1
	}
	n, err := f.Node(i)
	if err != nil {
		return nil, err
	}
	if err := f.Delete(i); err != nil {
		return nil, err
	}

	return n, nil
}

// Concat returns a new flow holding the nodes of f followed by the nodes of
// other. Both operands are left unchanged.
func (f *Flow) Concat(other *Flow) (*Flow, error) {
	if other == nil {
		return nil, errors.Wrap(ErrTypeMismatch, "can only concatenate a flow to a flow")
	}

	return New(append(f.Nodes(), other.nodes...))
}

// commit re-validates the prospective sequence in full and only then replaces
// the current one, so a rejected mutation never leaves the flow partially
// changed.
func (f *Flow) commit(next []model.Node) error {
	if err := checkNodes(next); err != nil {
		return err
	}
	f.nodes = next

	return f.prepareObservers()
}
