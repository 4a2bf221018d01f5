package plot

// Theme selects the chart color scheme.
type Theme string

// Supported themes.
const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// SemanticColors holds colors with a fixed meaning across charts.
type SemanticColors struct {
	Good    string
	Warning string
	Bad     string
}

// ChartPalette defines the colors for one theme.
type ChartPalette struct {
	Background string
	Text       string
	Primary    []string
	Semantic   SemanticColors
}

// Palette returns the chart palette for the given theme. Unknown
// themes fall back to dark.
func Palette(theme Theme) ChartPalette {
	if theme == ThemeLight {
		return ChartPalette{
			Background: "#ffffff",
			Text:       "#1f2328",
			Primary:    []string{"#0969da", "#8250df", "#bf3989"},
			Semantic: SemanticColors{
				Good:    "#1a7f37",
				Warning: "#9a6700",
				Bad:     "#cf222e",
			},
		}
	}

	return ChartPalette{
		Background: "#0d1117",
		Text:       "#e6edf3",
		Primary:    []string{"#58a6ff", "#bc8cff", "#f778ba"},
		Semantic: SemanticColors{
			Good:    "#3fb950",
			Warning: "#d29922",
			Bad:     "#f85149",
		},
	}
}
