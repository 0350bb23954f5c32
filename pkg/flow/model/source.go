package model

import "io"

// Sample is one item produced by a data source. Args are forwarded only to
// the node currently being trained, which allows supervised nodes to receive
// labels alongside the input batch.
type Sample struct {
	X    Matrix
	Args []Matrix
}

// Source is a lazy sequence of samples. Next returns io.EOF once the
// sequence is drained.
type Source interface {
	Next() (Sample, error)
}

// RewindableSource is a source that can be traversed more than once. Any
// node with multiple training phases requires one, since its source is fully
// drained once per phase.
type RewindableSource interface {
	Source
	Rewind() error
}

// SliceSource replays a fixed list of samples and can be rewound.
type SliceSource struct {
	samples []Sample
	pos     int
}

// NewSliceSource creates a rewindable source from a list of samples.
func NewSliceSource(samples ...Sample) *SliceSource {
	return &SliceSource{samples: samples}
}

// NewMatrixSource creates a rewindable source producing one sample per batch,
// without extra training args.
func NewMatrixSource(batches ...Matrix) *SliceSource {
	samples := make([]Sample, 0, len(batches))
	for _, b := range batches {
		samples = append(samples, Sample{X: b})
	}

	return &SliceSource{samples: samples}
}

func (s *SliceSource) Next() (Sample, error) {
	if s.pos >= len(s.samples) {
		return Sample{}, io.EOF
	}

	sample := s.samples[s.pos]
	s.pos++

	return sample, nil
}

func (s *SliceSource) Rewind() error {
	s.pos = 0

	return nil
}

// ChanSource drains a channel of samples. It is strictly single pass: once
// the channel is closed the source is exhausted and cannot be rewound, so it
// is rejected for nodes with more than one training phase.
type ChanSource struct {
	c <-chan Sample
}

// NewChanSource creates a single-pass source from a channel. The producer
// closes the channel to end the sequence.
func NewChanSource(c <-chan Sample) *ChanSource {
	return &ChanSource{c: c}
}

func (s *ChanSource) Next() (Sample, error) {
	sample, ok := <-s.c
	if !ok {
		return Sample{}, io.EOF
	}

	return sample, nil
}
