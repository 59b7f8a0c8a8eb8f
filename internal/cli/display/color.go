package display

import (
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// Colorizer handles terminal color output with RGB support.
type Colorizer struct {
	profile  termenv.Profile
	disabled bool
}

var (
	defaultColorizer *Colorizer
	colorizerOnce    sync.Once
)

// DefaultColorizer returns the singleton colorizer instance.
func DefaultColorizer() *Colorizer {
	colorizerOnce.Do(func() {
		noColor := os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb"
		defaultColorizer = NewColorizer(!noColor)
	})
	return defaultColorizer
}

// NewColorizer creates a new colorizer instance.
func NewColorizer(enabled bool) *Colorizer {
	return &Colorizer{
		profile:  termenv.ColorProfile(),
		disabled: !enabled,
	}
}

// Palette used by the gallery views.
var namedColors = map[string]string{
	"primary": "#8BE9FD",
	"accent":  "#BD93F9",
	"badge":   "#F1FA8C",
	"muted":   "#6272A4",
	"warn":    "#FFB86C",
	"error":   "#FF5555",
	"ok":      "#50FA7B",
	"white":   "#F8F8F2",
}

func (c *Colorizer) resolveColor(color string) termenv.Color {
	if color == "" {
		return nil
	}
	color = strings.ToLower(color)
	if hex, ok := namedColors[color]; ok {
		return c.profile.Color(hex)
	}
	return c.profile.Color(color)
}

// Color applies a foreground color to text. color is a palette name or a hex code.
func (c *Colorizer) Color(text, color string) string {
	if c.disabled || color == "" {
		return text
	}
	col := c.resolveColor(color)
	if col == nil {
		return text
	}
	return termenv.String(text).Foreground(col).String()
}

// Button renders text as a filled label, used for the active filter.
func (c *Colorizer) Button(text, color string) string {
	if c.disabled {
		return "[" + text + "]"
	}
	s := termenv.String(" " + text + " ").Bold()
	if col := c.resolveColor(color); col != nil {
		s = s.Background(col).Foreground(c.profile.Color("#000000"))
	}
	return s.String()
}

// Bold makes text bold.
func (c *Colorizer) Bold(text string) string {
	if c.disabled {
		return text
	}
	return termenv.String(text).Bold().String()
}

// Dim makes text dimmed.
func (c *Colorizer) Dim(text string) string {
	if c.disabled {
		return text
	}
	return termenv.String(text).Faint().String()
}

// IsDisabled returns whether colors are disabled.
func (c *Colorizer) IsDisabled() bool {
	return c.disabled
}
