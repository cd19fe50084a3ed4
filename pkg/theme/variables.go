package theme

import (
	"sort"
	"strings"
	"unicode"
)

const (
	lightenPercent = 20
	darkenPercent  = -20
)

// generateVariables flattens a validated definition into CSS custom
// properties. The output depends only on the definition.
func generateVariables(def Definition) (map[string]string, error) {
	return paletteVariables(def.Colors, def.Gradients, def.Shadows)
}

// variantVariables flattens the overrides of one variant. Only the keys the
// variant names appear in the result.
func variantVariables(v Variant) (map[string]string, error) {
	return paletteVariables(v.Colors, v.Gradients, v.Shadows)
}

func paletteVariables(colors, gradients, shadows map[string]string) (map[string]string, error) {
	vars := make(map[string]string, len(colors)*5+len(gradients)+len(shadows))

	for _, role := range sortedKeys(colors) {
		base, err := NormalizeHex(colors[role])
		if err != nil {
			return nil, err
		}
		name := "--color-" + kebab(role)
		vars[name] = base

		channels, err := RGB(base)
		if err != nil {
			return nil, err
		}
		vars[name+"-rgb"] = channels

		light, err := Adjust(base, lightenPercent)
		if err != nil {
			return nil, err
		}
		vars[name+"-light"] = light

		dark, err := Adjust(base, darkenPercent)
		if err != nil {
			return nil, err
		}
		vars[name+"-dark"] = dark

		contrast, err := Contrast(base)
		if err != nil {
			return nil, err
		}
		vars[name+"-contrast"] = contrast
	}
	for _, key := range sortedKeys(gradients) {
		vars["--gradient-"+kebab(key)] = gradients[key]
	}
	for _, key := range sortedKeys(shadows) {
		vars["--shadow-"+kebab(key)] = shadows[key]
	}
	return vars, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Stylesheet renders vars as a :root rule with keys in sorted order.
func Stylesheet(vars map[string]string) string {
	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range sortedKeys(vars) {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

// kebab converts camelCase role names to CSS identifiers: textSecondary ->
// text-secondary.
func kebab(name string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(name) {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if r == '_' || r == ' ' {
			b.WriteByte('-')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
