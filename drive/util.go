package drive

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/context"
)

type kv struct {
	key   string
	value string
}

func formatList(a []string) string {
	return strings.Join(a, ", ")
}

func formatSize(bytes int64, forceBytes bool) string {
	if bytes == 0 {
		return ""
	}

	if forceBytes {
		return fmt.Sprintf("%v B", bytes)
	}

	units := []string{"B", "KB", "MB", "GB", "TB", "PB"}

	var i int
	value := float64(bytes)

	for value > 1000 {
		value /= 1000
		i++
	}
	return fmt.Sprintf("%.1f %s", value, units[i])
}

func calcRate(bytes int64, start, end time.Time) int64 {
	seconds := float64(end.Sub(start).Seconds())
	if seconds < 1.0 {
		return bytes
	}
	return round(float64(bytes) / seconds)
}

func round(n float64) int64 {
	if n < 0 {
		return int64(math.Ceil(n - 0.5))
	}
	return int64(math.Floor(n + 0.5))
}

func formatBool(b bool) string {
	return strings.Title(fmt.Sprintf("%v", b))
}

func formatDatetime(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	local := t.Local()
	year, month, day := local.Date()
	hour, min, sec := local.Clock()
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", year, month, day, hour, min, sec)
}

// Truncates string to given max length, and inserts ellipsis into
// the middle of the string to signify that the string has been truncated
func truncateString(str string, maxRunes int) string {
	indicator := "..."

	// Number of runes in string
	runeCount := len([]rune(str))

	// Return input string if length of input string is less than max length
	// Input string is also returned if max length is less than 9 which is the minmal supported length
	if runeCount <= maxRunes || maxRunes < 9 {
		return str
	}

	// Number of remaining runes to be shown after truncation
	remaining := maxRunes - len(indicator)

	// Number of runes to show before the indicator
	head := int(math.Ceil(float64(remaining) / 2))

	// Number of runes to show after the indicator
	tail := remaining - head

	runes := []rune(str)

	return string(runes[:head]) + indicator + string(runes[runeCount-tail:])
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func mkdir(path string) error {
	dir := filepath.Dir(path)
	if fileExists(dir) {
		return nil
	}
	if err := os.MkdirAll(dir, 0775); err != nil {
		return &LocalError{Path: dir, Err: err}
	}
	return nil
}

func isTimeoutError(err error) bool {
	return err == context.Canceled
}
