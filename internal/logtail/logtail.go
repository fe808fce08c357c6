package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// stampLayout matches the log package's LstdFlags prefix.
const stampLayout = "2006/01/02 15:04:05"

// Line is one parsed log line.
type Line struct {
	Stamp     string
	Component string
	Message   string
}

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Parse splits a log line into its timestamp, the component before the
// first colon ("load", "print", ...) and the rest. Lines without a stamp
// are returned as a bare message.
func Parse(raw string) Line {
	line := Line{Message: raw}
	if len(raw) < len(stampLayout) {
		return line
	}
	if _, err := time.Parse(stampLayout, raw[:len(stampLayout)]); err != nil {
		return line
	}
	line.Stamp = raw[:len(stampLayout)]
	rest := strings.TrimSpace(raw[len(stampLayout):])
	line.Message = rest
	if head, tail, ok := strings.Cut(rest, ": "); ok && head != "" && len(strings.Fields(head)) <= 3 {
		line.Component = head
		line.Message = strings.TrimSpace(tail)
	}
	return line
}

// ParseAll parses every line.
func ParseAll(raw []string) []Line {
	out := make([]Line, 0, len(raw))
	for _, r := range raw {
		out = append(out, Parse(r))
	}
	return out
}
