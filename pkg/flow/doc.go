// Package flow provides a linear sequence of trainable processing nodes.
//
// A flow chains nodes that are incrementally fit to streamed data in one or
// more passes and later applied to transform new data, with an optional
// inverse transform. Data sent to the first node is successively processed by
// the following ones; training, execution and inverse execution of the whole
// sequence are automated.
//
// The flow behaves like a list: nodes can be read, replaced, inserted,
// removed and concatenated. Every mutation is validated against the
// dimension-consistency invariant before it is committed, so a rejected
// mutation never leaves the sequence half-changed.
//
// Training drives every node, in order, through all its training phases,
// filtering each sample through the already-trained part of the chain. A
// failure raised by a node is wrapped into a *NodeError naming the node's
// position and, when crash recovery is armed, carries a forensic snapshot of
// the whole flow for later inspection.
package flow
