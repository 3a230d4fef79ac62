package config

// UIConfig holds terminal quiz configuration.
type UIConfig struct {
	// Theme is "auto", "light" or "dark". Auto follows the terminal background.
	Theme string `json:"theme" yaml:"theme"`

	// Glyphs renders × and ÷ instead of * and / in the quiz prompt.
	Glyphs bool `json:"glyphs,omitempty" yaml:"glyphs,omitempty"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{Theme: "auto"}
}
