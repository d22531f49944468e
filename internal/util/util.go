// internal/util/util.go
package util

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
)

// WriteFile writes data to a file with 0o644 permissions, creating parent
// directories as needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Truncate shortens text to at most width terminal cells, appending an
// ellipsis if truncated. Wide runes such as CJK count as two cells.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}

// WrapToWidth wraps the given text to a specified cell width, breaking long words.
func WrapToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			out = append(out, "")
			continue
		}
		var cur strings.Builder
		curWidth := 0
		words := strings.Fields(line)
		for wi, w := range words {
			space := 0
			if wi > 0 {
				space = 1
			}
			wWidth := runewidth.StringWidth(w)
			if curWidth > 0 && curWidth+space+wWidth <= width || curWidth == 0 && wWidth <= width {
				if curWidth > 0 {
					cur.WriteByte(' ')
					curWidth++
				}
				cur.WriteString(w)
				curWidth += wWidth
				continue
			}
			if curWidth > 0 {
				out = append(out, cur.String())
				cur.Reset()
				curWidth = 0
			}
			if wWidth <= width {
				cur.WriteString(w)
				curWidth = wWidth
				continue
			}
			var chunk strings.Builder
			chunkWidth := 0
			for _, r := range w {
				rw := runewidth.RuneWidth(r)
				if chunkWidth+rw > width && chunkWidth > 0 {
					out = append(out, chunk.String())
					chunk.Reset()
					chunkWidth = 0
				}
				chunk.WriteRune(r)
				chunkWidth += rw
			}
			cur.WriteString(chunk.String())
			curWidth = chunkWidth
		}
		if cur.Len() > 0 {
			out = append(out, cur.String())
		} else if len(words) == 0 {
			out = append(out, "")
		}
	}
	return strings.Join(out, "\n")
}

// PadRight pads text with spaces to width cells.
func PadRight(text string, width int) string {
	return runewidth.FillRight(text, width)
}

// Clamp limits v to [lo, hi]. An empty range returns lo.
func Clamp(v, lo, hi int) int {
	if hi < lo || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
