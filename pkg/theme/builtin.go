package theme

// DefaultName is the theme used when a record names an unknown theme.
const DefaultName = "default"

var standardShadows = map[string]string{
	"sm": "0 1px 3px rgba(0, 0, 0, 0.12)",
	"md": "0 4px 6px rgba(0, 0, 0, 0.1)",
	"lg": "0 10px 25px rgba(0, 0, 0, 0.15)",
	"xl": "0 20px 40px rgba(0, 0, 0, 0.2)",
}

// Builtin returns the stock theme definitions.
func Builtin() []Definition {
	return []Definition{
		{
			Name:        "default",
			Description: "Violeta y azul, neutro para cualquier publicación",
			Colors: map[string]string{
				"primary":       "#667eea",
				"secondary":     "#764ba2",
				"accent":        "#f093fb",
				"background":    "#ffffff",
				"surface":       "#f8f9fa",
				"text":          "#2d3748",
				"textSecondary": "#718096",
				"border":        "#e2e8f0",
				"success":       "#48bb78",
				"warning":       "#ed8936",
				"error":         "#f56565",
				"info":          "#4299e1",
			},
			Gradients: map[string]string{
				"primary":   "linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
				"secondary": "linear-gradient(135deg, #f093fb 0%, #f5576c 100%)",
				"overlay":   "linear-gradient(180deg, rgba(0, 0, 0, 0) 0%, rgba(0, 0, 0, 0.8) 100%)",
			},
			Shadows: copyStringMap(standardShadows),
		},
		{
			Name:        "news",
			Description: "Rojo de última hora para noticias",
			Colors: map[string]string{
				"primary":       "#ff416c",
				"secondary":     "#ff4b2b",
				"accent":        "#ffd200",
				"background":    "#ffffff",
				"surface":       "#fff5f5",
				"text":          "#1a202c",
				"textSecondary": "#4a5568",
				"border":        "#fed7d7",
				"success":       "#38a169",
				"warning":       "#dd6b20",
				"error":         "#e53e3e",
				"info":          "#3182ce",
			},
			Gradients: map[string]string{
				"primary":   "linear-gradient(135deg, #ff416c 0%, #ff4b2b 100%)",
				"secondary": "linear-gradient(135deg, #ffd200 0%, #f7971e 100%)",
				"overlay":   "linear-gradient(180deg, rgba(0, 0, 0, 0) 0%, rgba(0, 0, 0, 0.85) 100%)",
			},
			Shadows: copyStringMap(standardShadows),
			Variants: map[string]Variant{
				"night": {
					Description: "Edición nocturna",
					Colors: map[string]string{
						"background":    "#1a202c",
						"surface":       "#2d3748",
						"text":          "#f7fafc",
						"textSecondary": "#cbd5e0",
					},
				},
			},
		},
		{
			Name:        "dark",
			Description: "Fondo oscuro con acentos suaves",
			Colors: map[string]string{
				"primary":       "#90cdf4",
				"secondary":     "#b794f4",
				"accent":        "#f6e05e",
				"background":    "#1a202c",
				"surface":       "#2d3748",
				"text":          "#f7fafc",
				"textSecondary": "#a0aec0",
				"border":        "#4a5568",
				"success":       "#68d391",
				"warning":       "#f6ad55",
				"error":         "#fc8181",
				"info":          "#63b3ed",
			},
			Gradients: map[string]string{
				"primary":   "linear-gradient(135deg, #1a202c 0%, #2d3748 100%)",
				"secondary": "linear-gradient(135deg, #90cdf4 0%, #b794f4 100%)",
				"overlay":   "linear-gradient(180deg, rgba(26, 32, 44, 0) 0%, rgba(26, 32, 44, 0.95) 100%)",
			},
			Shadows: map[string]string{
				"sm": "0 1px 3px rgba(0, 0, 0, 0.4)",
				"md": "0 4px 6px rgba(0, 0, 0, 0.4)",
				"lg": "0 10px 25px rgba(0, 0, 0, 0.5)",
				"xl": "0 20px 40px rgba(0, 0, 0, 0.6)",
			},
		},
		{
			Name:        "minimal",
			Description: "Blanco y negro con un único acento",
			Colors: map[string]string{
				"primary":       "#000000",
				"secondary":     "#4a4a4a",
				"accent":        "#e63946",
				"background":    "#ffffff",
				"surface":       "#f5f5f5",
				"text":          "#111111",
				"textSecondary": "#666666",
				"border":        "#dddddd",
				"success":       "#2a9d8f",
				"warning":       "#e9c46a",
				"error":         "#e63946",
				"info":          "#457b9d",
			},
			Gradients: map[string]string{
				"primary":   "linear-gradient(135deg, #000000 0%, #4a4a4a 100%)",
				"secondary": "linear-gradient(135deg, #f5f5f5 0%, #ffffff 100%)",
				"overlay":   "linear-gradient(180deg, rgba(255, 255, 255, 0) 0%, rgba(255, 255, 255, 0.9) 100%)",
			},
			Shadows: map[string]string{
				"sm": "none",
				"md": "0 2px 4px rgba(0, 0, 0, 0.08)",
				"lg": "0 6px 12px rgba(0, 0, 0, 0.1)",
				"xl": "0 12px 24px rgba(0, 0, 0, 0.12)",
			},
		},
		{
			Name:        "vibrant",
			Description: "Neón sobre violeta profundo",
			Colors: map[string]string{
				"primary":       "#f72585",
				"secondary":     "#7209b7",
				"accent":        "#4cc9f0",
				"background":    "#10002b",
				"surface":       "#240046",
				"text":          "#ffffff",
				"textSecondary": "#e0aaff",
				"border":        "#5a189a",
				"success":       "#06d6a0",
				"warning":       "#ffd166",
				"error":         "#ef476f",
				"info":          "#4cc9f0",
			},
			Gradients: map[string]string{
				"primary":   "linear-gradient(135deg, #f72585 0%, #7209b7 100%)",
				"secondary": "linear-gradient(135deg, #4cc9f0 0%, #4361ee 100%)",
				"overlay":   "linear-gradient(180deg, rgba(16, 0, 43, 0) 0%, rgba(16, 0, 43, 0.9) 100%)",
			},
			Shadows: map[string]string{
				"sm": "0 0 6px rgba(247, 37, 133, 0.4)",
				"md": "0 0 12px rgba(247, 37, 133, 0.5)",
				"lg": "0 0 24px rgba(247, 37, 133, 0.6)",
				"xl": "0 0 40px rgba(247, 37, 133, 0.7)",
			},
		},
		{
			Name:        "corporate",
			Description: "Azules sobrios para comunicados",
			Colors: map[string]string{
				"primary":       "#1e3a8a",
				"secondary":     "#2563eb",
				"accent":        "#f59e0b",
				"background":    "#f8fafc",
				"surface":       "#ffffff",
				"text":          "#0f172a",
				"textSecondary": "#475569",
				"border":        "#cbd5e1",
				"success":       "#16a34a",
				"warning":       "#d97706",
				"error":         "#dc2626",
				"info":          "#0284c7",
			},
			Gradients: map[string]string{
				"primary":   "linear-gradient(135deg, #1e3a8a 0%, #2563eb 100%)",
				"secondary": "linear-gradient(135deg, #f59e0b 0%, #fbbf24 100%)",
				"overlay":   "linear-gradient(180deg, rgba(15, 23, 42, 0) 0%, rgba(15, 23, 42, 0.85) 100%)",
			},
			Shadows: copyStringMap(standardShadows),
		},
	}
}
