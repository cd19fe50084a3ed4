package theme

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

var requiredSections = []string{"colors", "gradients", "shadows"}

// Decode parses a JSON or YAML theme document and checks that the colors,
// gradients and shadows sections are present and object-shaped. An optional
// variants object holds partial palettes keyed by variant name.
func Decode(data []byte) (Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Definition{}, &RegistrationError{Reason: "document is empty"}
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = nil
		if yerr := yaml.Unmarshal(data, &raw); yerr != nil || raw == nil {
			return Definition{}, &RegistrationError{Reason: "invalid JSON or YAML document"}
		}
	}

	name, _ := raw["name"].(string)
	def := Definition{Name: strings.TrimSpace(name)}
	if desc, ok := raw["description"].(string); ok {
		def.Description = desc
	}

	for _, section := range requiredSections {
		value, ok := raw[section]
		if !ok || value == nil {
			return Definition{}, &RegistrationError{Theme: def.Name, Reason: section + " section is required"}
		}
		values, err := decodeSection(def.Name, section, value)
		if err != nil {
			return Definition{}, err
		}
		switch section {
		case "colors":
			def.Colors = values
		case "gradients":
			def.Gradients = values
		case "shadows":
			def.Shadows = values
		}
	}

	if value, ok := raw["variants"]; ok && value != nil {
		variants, ok := value.(map[string]any)
		if !ok {
			return Definition{}, &RegistrationError{Theme: def.Name, Reason: "variants must be an object"}
		}
		def.Variants = make(map[string]Variant, len(variants))
		for name, body := range variants {
			obj, ok := body.(map[string]any)
			if !ok {
				return Definition{}, &RegistrationError{Theme: def.Name, Reason: fmt.Sprintf("variants.%s must be an object", name)}
			}
			var v Variant
			if desc, ok := obj["description"].(string); ok {
				v.Description = desc
			}
			for _, section := range requiredSections {
				value, ok := obj[section]
				if !ok || value == nil {
					continue
				}
				values, err := decodeSection(def.Name, "variants."+name+"."+section, value)
				if err != nil {
					return Definition{}, err
				}
				switch section {
				case "colors":
					v.Colors = values
				case "gradients":
					v.Gradients = values
				case "shadows":
					v.Shadows = values
				}
			}
			def.Variants[name] = v
		}
	}
	return def, nil
}

func decodeSection(theme, label string, value any) (map[string]string, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, &RegistrationError{Theme: theme, Reason: label + " must be an object"}
	}
	values := make(map[string]string, len(obj))
	for key, entry := range obj {
		text, ok := entry.(string)
		if !ok {
			return nil, &RegistrationError{Theme: theme, Reason: fmt.Sprintf("%s.%s must be a string", label, key)}
		}
		values[key] = text
	}
	return values, nil
}

// Import decodes data and registers the theme, returning its name. When the
// document carries no name, fallbackName is used.
func (r *Registry) Import(data []byte, fallbackName string) (string, error) {
	def, err := Decode(data)
	if err != nil {
		return "", err
	}
	name := def.Name
	if name == "" {
		name = strings.TrimSpace(fallbackName)
	}
	if err := r.Register(name, def); err != nil {
		return "", err
	}
	return name, nil
}

// Export renders a registered theme as indented JSON.
func (r *Registry) Export(name string) ([]byte, error) {
	def, ok := r.Definition(name)
	if !ok {
		return nil, fmt.Errorf("theme: %q not registered", name)
	}
	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("theme: export %q: %w", name, err)
	}
	return data, nil
}

// LoadFS imports every JSON/YAML document found in fsys. Files without a
// name field register under their base name.
func (r *Registry) LoadFS(fsys fs.FS) ([]string, error) {
	if fsys == nil {
		return nil, nil
	}
	var loaded []string
	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isThemeFile(p) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("theme: read %s: %w", p, err)
		}
		base := strings.TrimSuffix(path.Base(p), path.Ext(p))
		name, err := r.Import(data, base)
		if err != nil {
			return fmt.Errorf("theme: import %s: %w", p, err)
		}
		loaded = append(loaded, name)
		return nil
	})
	if err != nil {
		return loaded, err
	}
	return loaded, nil
}

func isThemeFile(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
