// Package templates loads card templates by (platform, name), caches them
// in memory and generates a sized fallback layout whenever a template cannot
// be fetched, so rendering always has input to work with.
package templates
