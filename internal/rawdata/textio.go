package rawdata

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// readTextLines reads a delimited text source. Content is decoded as UTF-8
// unless a BOM says otherwise (the legacy tables ship in a mix of UTF-8 and
// UTF-16), normalized to NFC, and returned line by line with blank lines and
// '#' comments dropped.
func readTextLines(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the resolved registry
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := transform.NewReader(f, transform.Chain(decoder, norm.NFC))

	var lines []string
	sc := bufio.NewScanner(reader)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}

// splitFields splits a table line on tabs, falling back to arbitrary runs of
// whitespace for hand-edited files.
func splitFields(line string) []string {
	if strings.ContainsRune(line, '\t') {
		parts := strings.Split(line, "\t")
		out := parts[:0]
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return strings.Fields(line)
}
