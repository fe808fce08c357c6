package document

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const defaultPrintCommand = "lp"

// PrintJob is one request to the print primitive.
type PrintJob struct {
	Source string
	Title  string
	Pages  int // zero for single images
}

// Printer is the generic print primitive.
type Printer interface {
	Print(ctx context.Context, job PrintJob) error
}

// CommandPrinter spools jobs through a command such as lp or lpr. Remote
// sources are fetched to a temporary file first.
type CommandPrinter struct {
	Command string
	Opener  Opener
}

// Print runs the print command for job.
func (p CommandPrinter) Print(ctx context.Context, job PrintJob) error {
	fields := strings.Fields(p.Command)
	if len(fields) == 0 {
		fields = []string{defaultPrintCommand}
	}

	path := job.Source
	if strings.Contains(path, "://") {
		tmp, err := p.spool(ctx, job.Source)
		if err != nil {
			return err
		}
		defer func() { _ = os.Remove(tmp) }()
		path = tmp
	}

	args := append([]string{}, fields[1:]...)
	if title := strings.TrimSpace(job.Title); title != "" && fields[0] == defaultPrintCommand {
		args = append(args, "-t", title)
	}
	if job.Pages > 0 && fields[0] == defaultPrintCommand {
		args = append(args, "-P", "1-"+strconv.Itoa(job.Pages))
	}
	args = append(args, path)

	out, err := exec.CommandContext(ctx, fields[0], args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("print %s: %w: %s", filepath.Base(path), err, msg)
		}
		return fmt.Errorf("print %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (p CommandPrinter) spool(ctx context.Context, src string) (string, error) {
	if p.Opener == nil {
		return "", fmt.Errorf("print remote source: no opener")
	}
	rc, err := p.Opener.Open(ctx, src)
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	f, err := os.CreateTemp("", "lightbox-print-*"+filepath.Ext(src))
	if err != nil {
		return "", fmt.Errorf("create spool file: %w", err)
	}
	if _, err := io.Copy(f, rc); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write spool file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close spool file: %w", err)
	}
	return f.Name(), nil
}
