package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: expectedAll},
		{name: "read all (negative)", maxLines: -1, expected: expectedAll},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Read() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Line
	}{
		{name: "empty line", input: "", want: Line{}},
		{name: "no stamp", input: "panic: boom", want: Line{Message: "panic: boom"}},
		{
			name:  "component",
			input: "2026/10/18 14:32:15 load /photos/a.jpg: unsupported format",
			want:  Line{Stamp: "2026/10/18 14:32:15", Component: "load /photos/a.jpg", Message: "unsupported format"},
		},
		{
			name:  "short component",
			input: "2026/10/18 14:32:15 download: copy failed",
			want:  Line{Stamp: "2026/10/18 14:32:15", Component: "download", Message: "copy failed"},
		},
		{
			name:  "no component",
			input: "2026/10/18 14:32:15 lightbox starting",
			want:  Line{Stamp: "2026/10/18 14:32:15", Message: "lightbox starting"},
		},
		{
			name:  "url is not a component",
			input: "2026/10/18 14:32:15 https://gallery.example.com unreachable",
			want:  Line{Stamp: "2026/10/18 14:32:15", Message: "https://gallery.example.com unreachable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Parse(tt.input)); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseAll(t *testing.T) {
	got := ParseAll([]string{"a", "2026/10/18 14:32:15 print x: failed"})
	if len(got) != 2 || got[1].Component != "print x" {
		t.Fatalf("ParseAll() = %+v", got)
	}
}
