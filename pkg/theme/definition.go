package theme

// Kind selects the palette section a theme token addresses.
type Kind string

const (
	KindColor    Kind = "color"
	KindGradient Kind = "gradient"
	KindShadow   Kind = "shadow"
)

// ColorRoles is the closed set of roles every theme must define.
var ColorRoles = []string{
	"primary",
	"secondary",
	"accent",
	"background",
	"surface",
	"text",
	"textSecondary",
	"border",
	"success",
	"warning",
	"error",
	"info",
}

// Definition is the exchange format for a theme.
type Definition struct {
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Colors      map[string]string  `json:"colors" yaml:"colors"`
	Gradients   map[string]string  `json:"gradients" yaml:"gradients"`
	Shadows     map[string]string  `json:"shadows" yaml:"shadows"`
	Variants    map[string]Variant `json:"variants,omitempty" yaml:"variants,omitempty"`
}

// Variant overrides part of a palette, e.g. a light or high-contrast flavour
// of the same theme. Omitted keys keep the base value.
type Variant struct {
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Colors      map[string]string `json:"colors,omitempty" yaml:"colors,omitempty"`
	Gradients   map[string]string `json:"gradients,omitempty" yaml:"gradients,omitempty"`
	Shadows     map[string]string `json:"shadows,omitempty" yaml:"shadows,omitempty"`
}

func (d Definition) clone() Definition {
	out := d
	out.Colors = copyStringMap(d.Colors)
	out.Gradients = copyStringMap(d.Gradients)
	out.Shadows = copyStringMap(d.Shadows)
	if d.Variants != nil {
		out.Variants = make(map[string]Variant, len(d.Variants))
		for name, v := range d.Variants {
			out.Variants[name] = v.clone()
		}
	}
	return out
}

func (v Variant) clone() Variant {
	out := v
	out.Colors = copyStringMap(v.Colors)
	out.Gradients = copyStringMap(v.Gradients)
	out.Shadows = copyStringMap(v.Shadows)
	return out
}

func (v Variant) section(kind Kind) map[string]string {
	return Definition{Colors: v.Colors, Gradients: v.Gradients, Shadows: v.Shadows}.section(kind)
}

func (d Definition) section(kind Kind) map[string]string {
	switch kind {
	case KindColor:
		return d.Colors
	case KindGradient:
		return d.Gradients
	case KindShadow:
		return d.Shadows
	default:
		return nil
	}
}

func copyStringMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
