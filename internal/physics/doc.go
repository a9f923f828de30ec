// Package physics defines the contract between physlab and a rigid-body
// physics engine.
//
// The engine is a black box: physlab creates scenes and actors through
// descriptors, submits steps with Scene.Simulate and collects them with
// Scene.FetchResults. Reads on actors always return the last fetched
// results; writes issued while a step is in flight are applied after the
// next fetch. Package rigid provides an in-process implementation.
package physics
