// Package orchestrator wires template loading, record sanitisation and
// directive processing into a single Render call and tracks the context of
// the most recent render for capture collaborators.
package orchestrator
