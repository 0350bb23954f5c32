// Package model provides the data structures and contracts for the flow package.
// It defines the node capability contract, the sample and data source types
// consumed during training, and the observer interface used to follow the
// lifecycle of a flow.
package model
