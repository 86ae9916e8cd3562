package storage

import (
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/jaevor/go-nanoid"
	"golang.org/x/text/unicode/norm"
)

var windowsDeviceNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"LPT1": true, "LPT2": true, "LPT3": true,
}

// SanitizeFilename turns a client supplied name into a safe single path
// component: NFKD folded to ASCII, separators become spaces, whitespace runs
// become "_", anything outside [A-Za-z0-9_.-] is dropped and leading or
// trailing dots and underscores are trimmed. The result may be empty.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r > unicode.MaxASCII {
			continue
		}
		if r == '/' || r == '\\' {
			r = ' '
		}
		b.WriteRune(r)
	}

	joined := strings.Join(strings.Fields(b.String()), "_")

	b.Reset()
	for _, r := range joined {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			b.WriteRune(r)
		}
	}

	sanitized := strings.Trim(b.String(), "._")

	if sanitized != "" {
		base := strings.ToUpper(strings.SplitN(sanitized, ".", 2)[0])
		if windowsDeviceNames[base] {
			sanitized = "_" + sanitized
		}
	}

	return sanitized
}

// Extension returns the lower-cased extension without the dot.
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}

// KeyGenerator builds collision-free keys of the form
// <userID>/<UTC timestamp>_<random>_<sanitized name>.
type KeyGenerator struct {
	generateID func() string
}

func NewKeyGenerator() (*KeyGenerator, error) {
	generateID, err := nanoid.CustomASCII("0123456789abcdefghijklmnopqrstuvwxyz", 12)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize nanoid generator: %w", err)
	}
	return &KeyGenerator{generateID: generateID}, nil
}

func (g *KeyGenerator) ScreenshotKey(userID int64, at time.Time, sanitizedName string) string {
	return fmt.Sprintf("%d/%s_%s_%s", userID, at.UTC().Format("20060102T150405Z"), g.generateID(), sanitizedName)
}
