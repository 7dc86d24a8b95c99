package upload

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const maxBaseLength = 50

var (
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	safeExt  = regexp.MustCompile(`^\.[a-z0-9]+$`)
	billion  = big.NewInt(1_000_000_000)
)

// Sanitize lowercases name and collapses every non-alphanumeric run into a
// single hyphen.
func Sanitize(name string) string {
	s := nonAlnum.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.Trim(s, "-")
	if len(s) > maxBaseLength {
		s = strings.TrimRight(s[:maxBaseLength], "-")
	}
	if s == "" {
		return "file"
	}
	return s
}

// GenerateFilename returns base-<unixMillis>-<9 random digits><ext>.
func GenerateFilename(original string, now time.Time) (string, error) {
	original = filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(original, filepath.Ext(original))
	if !safeExt.MatchString(ext) {
		ext = ""
	}

	n, err := rand.Int(rand.Reader, billion)
	if err != nil {
		return "", fmt.Errorf("random suffix: %w", err)
	}
	return fmt.Sprintf("%s-%d-%09d%s", Sanitize(base), now.UnixMilli(), n.Int64(), ext), nil
}
