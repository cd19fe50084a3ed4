// Package platform describes the social networks a card can target and the
// canvas size of every template they offer. The catalogue is static data used
// for input validation, fallback template generation and capture metadata.
package platform
