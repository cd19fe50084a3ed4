// Package template defines the engine seam used to generate card layouts
// from pongo2 templates. Stored card templates never pass through it; they are
// resolved by the directive processor.
package template
