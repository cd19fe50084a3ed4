// Package prompt captures card records and render targets interactively.
package prompt
