// Package opcall owns the typed operation-call contract.
//
// Ownership boundary:
// - parameter type taxonomy and wire descriptors
// - parameter value-shape validation
// - request envelope construction and execution
package opcall
