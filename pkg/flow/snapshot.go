package flow

import (
	"bytes"
	"encoding/gob"

	"github.com/pkg/errors"

	"github.com/askiada/go-flow/pkg/flow/model"
)

// flowSnapshot is the serialized form of a flow: the node sequence, the
// verbosity flag and the metadata entries. Logger and crash recovery settings
// are runtime configuration and are not carried.
type flowSnapshot struct {
	Nodes   []model.Node
	Verbose bool
	Meta    map[string]any
}

// Snapshot serializes the flow to an opaque byte slice. The concrete node
// types must be registered with gob.Register. Restore(Snapshot(f)) behaves
// equivalently to f.
func (f *Flow) Snapshot() ([]byte, error) {
	snap := flowSnapshot{
		Nodes:   f.nodes,
		Verbose: f.verbose,
		Meta:    f.meta.Snapshot(),
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(snap); err != nil {
		return nil, errors.Wrap(err, "unable to encode flow")
	}

	return buf.Bytes(), nil
}

// Restore rebuilds a flow from a snapshot, re-validating the node sequence.
func Restore(data []byte, opts ...Option) (*Flow, error) {
	var snap flowSnapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&snap); err != nil {
		return nil, errors.Wrap(err, "unable to decode flow")
	}

	f, err := New(snap.Nodes, opts...)
	if err != nil {
		return nil, err
	}
	f.verbose = f.verbose || snap.Verbose
	f.meta.Merge(snap.Meta)

	return f, nil
}

// Copy returns a deep copy of the flow via a full serialize/deserialize round
// trip, so the copy shares no mutable state with the original.
func (f *Flow) Copy() (*Flow, error) {
	data, err := f.Snapshot()
	if err != nil {
		return nil, errors.Wrap(err, "unable to copy flow")
	}

	return Restore(data)
}
