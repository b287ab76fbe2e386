package highlight

import (
	"hash/fnv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Fixed status colours.
const (
	ColorGreen   = "#22c55e"
	ColorYellow  = "#eab308"
	ColorOrange  = "#f97316"
	ColorRed     = "#ef4444"
	ColorDarkRed = "#991b1b"
	ColorGray    = "#6b7280"
)

// extensionColors pins well-known extensions so the city looks familiar.
var extensionColors = map[string]string{
	"ts":   "#3178c6",
	"tsx":  "#61dafb",
	"js":   "#f7df1e",
	"jsx":  "#61dafb",
	"go":   "#00add8",
	"py":   "#3776ab",
	"rs":   "#dea584",
	"java": "#b07219",
	"json": "#cbcb41",
	"md":   "#083fa1",
	"yaml": "#cb171e",
	"yml":  "#cb171e",
	"css":  "#563d7c",
	"html": "#e34c26",
	"sh":   "#89e051",
}

// Palette assigns colours to file extensions. The zero value uses the
// built-in table and a hash-derived hue for everything else.
type Palette struct {
	Overrides map[string]string
}

// Primary returns the fill colour for ext. The mapping is stable across runs.
func (p Palette) Primary(ext string) string {
	ext = strings.ToLower(ext)
	if c, ok := p.Overrides[ext]; ok {
		return c
	}
	if c, ok := extensionColors[ext]; ok {
		return c
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(ext))
	hue := float64(h.Sum32() % 360)
	return colorful.Hsv(hue, 0.55, 0.85).Hex()
}

// Secondary returns the accent colour for ext, a darker shade of Primary.
func (p Palette) Secondary(ext string) string {
	return shade(p.Primary(ext), 0.35)
}

// shade blends hex towards black by amount.
func shade(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return c.BlendLab(colorful.Color{}, amount).Clamped().Hex()
}

// severityScale returns n colours from green to red. n must be >= 2.
func severityScale(n int) []string {
	from, _ := colorful.Hex(ColorGreen)
	to, _ := colorful.Hex(ColorRed)
	out := make([]string, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		out[i] = from.BlendLab(to, t).Clamped().Hex()
	}
	return out
}

// ValidColor reports whether s parses as a #rrggbb colour.
func ValidColor(s string) bool {
	_, err := colorful.Hex(s)
	return err == nil
}
