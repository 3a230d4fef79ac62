package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("KIDSMATH_DARK_MODE", "1")
	assert.True(t, DetectTheme().IsDark, "expected dark theme when KIDSMATH_DARK_MODE=1")

	t.Setenv("KIDSMATH_DARK_MODE", "")
	assert.False(t, DetectTheme().IsDark, "expected light theme when KIDSMATH_DARK_MODE is unset")

	t.Setenv("COLORFGBG", "15;0")
	assert.True(t, DetectTheme().IsDark)

	t.Setenv("COLORFGBG", "0;15")
	assert.False(t, DetectTheme().IsDark)
}

func TestThemeFor(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("KIDSMATH_DARK_MODE", "")
	assert.True(t, ThemeFor("dark").IsDark)
	assert.False(t, ThemeFor("LIGHT").IsDark)
	assert.False(t, ThemeFor("auto").IsDark)
}
