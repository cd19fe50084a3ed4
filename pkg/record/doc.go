// Package record defines the content model that flows through the render
// pipeline: the loosely typed Raw input, the closed Value union the directive
// processor understands, and the Enriched record produced by sanitisation.
package record
