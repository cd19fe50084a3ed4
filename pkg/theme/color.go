package theme

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const contrastThreshold = 0.5

type rgb struct {
	r, g, b int
}

func parseHex(value string) (rgb, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return rgb{}, fmt.Errorf("theme: invalid hex colour %q", value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rgb{}, fmt.Errorf("theme: invalid hex colour %q", value)
	}
	return rgb{r: int(n >> 16 & 0xff), g: int(n >> 8 & 0xff), b: int(n & 0xff)}, nil
}

func (c rgb) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

// NormalizeHex returns the lower-case six digit form of a hex colour.
func NormalizeHex(value string) (string, error) {
	c, err := parseHex(value)
	if err != nil {
		return "", err
	}
	return c.hex(), nil
}

// Adjust moves every channel by percent*2.55 (rounded), clamped to [0,255].
// Positive values lighten, negative values darken.
func Adjust(hex string, percent float64) (string, error) {
	c, err := parseHex(hex)
	if err != nil {
		return "", err
	}
	amount := int(math.Round(percent * 2.55))
	return rgb{
		r: clampChannel(c.r + amount),
		g: clampChannel(c.g + amount),
		b: clampChannel(c.b + amount),
	}.hex(), nil
}

// Luminance returns 0.299R+0.587G+0.114B normalised to [0,1].
func Luminance(hex string) (float64, error) {
	c, err := parseHex(hex)
	if err != nil {
		return 0, err
	}
	return (0.299*float64(c.r) + 0.587*float64(c.g) + 0.114*float64(c.b)) / 255, nil
}

// Contrast picks black text for light colours and white text for dark ones.
func Contrast(hex string) (string, error) {
	lum, err := Luminance(hex)
	if err != nil {
		return "", err
	}
	if lum > contrastThreshold {
		return "#000000", nil
	}
	return "#ffffff", nil
}

// RGB renders a hex colour as "r, g, b" for use inside rgba().
func RGB(hex string) (string, error) {
	c, err := parseHex(hex)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(c.r) + ", " + strconv.Itoa(c.g) + ", " + strconv.Itoa(c.b), nil
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
