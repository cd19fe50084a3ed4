// Package theme holds the named colour, gradient and shadow palettes used by
// card templates. Each registered theme is flattened once into a CSS variable
// map (with derived -rgb, -light, -dark and -contrast colour variants) that is
// cached for the lifetime of the registry.
package theme
