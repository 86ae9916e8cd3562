package storage

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My cool movie.mov", "My_cool_movie.mov"},
		{"../../../etc/passwd", "etc_passwd"},
		{`..\..\windows\shot.png`, "windows_shot.png"},
		{"i contain cool \xfcml\xe4uts.txt", "i_contain_cool_mluts.txt"},
		{"zażółć gęślą.jpg", "zazoc_gesla.jpg"},
		{"Ĳ.png", "IJ.png"},
		{"  spaced   out .jpeg ", "spaced_out_.jpeg"},
		{".hidden.png", "hidden.png"},
		{"con.png", "_con.png"},
		{"screen<shot>?.PNG", "screenshot.PNG"},
		{"///", ""},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, SanitizeFilename(tc.in))
		})
	}
}

func TestExtension(t *testing.T) {
	require.Equal(t, "png", Extension("a.PNG"))
	require.Equal(t, "jpeg", Extension("archive.tar.jpeg"))
	require.Equal(t, "", Extension("noext"))
	require.Equal(t, "", Extension(""))
}

func TestKeyGenerator_ScreenshotKey(t *testing.T) {
	gen, err := NewKeyGenerator()
	require.NoError(t, err)

	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("CET", 3600))
	key := gen.ScreenshotKey(42, at, "shot.png")

	require.Regexp(t, regexp.MustCompile(`^42/20260304T040607Z_[0-9a-z]{12}_shot\.png$`), key)

	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		k := gen.ScreenshotKey(42, at, "shot.png")
		require.False(t, seen[k], "keys for the same name and instant must not collide")
		seen[k] = true
	}
	require.True(t, strings.HasPrefix(key, "42/"))
}
