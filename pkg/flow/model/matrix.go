package model

// Matrix is a batch of samples. Each row is one sample, each column one
// dimension. The flow engine only inspects shapes and concatenates rows;
// all arithmetic belongs to the nodes.
type Matrix [][]float64

// Rows returns the number of samples in the batch.
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the sample width, or 0 for an empty batch.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}

	return len(m[0])
}

// ConcatRows stacks the given batches on top of each other, in order.
func ConcatRows(batches ...Matrix) Matrix {
	total := 0
	for _, b := range batches {
		total += b.Rows()
	}

	out := make(Matrix, 0, total)
	for _, b := range batches {
		out = append(out, b...)
	}

	return out
}
