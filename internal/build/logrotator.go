package build

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jrick/logrotate/rotator"
)

// RotatorOptions configures a RotatingWriter. The zero value of every field
// except Dir gets a sane default, so callers typically set only Dir and
// Name.
type RotatorOptions struct {
	// Dir is the directory the log files are written under. It is
	// created if missing.
	Dir string

	// Name is the base file name; the live log is "<Name>.log" and
	// rotated files are gzip-compressed alongside it. Defaults to
	// "actorcore".
	Name string

	// MaxFiles caps how many rotated files are kept. 0 defaults to 10;
	// a negative value disables rotation (single file, unbounded
	// growth).
	MaxFiles int

	// MaxSizeMB is the size in megabytes a log file may reach before it
	// is rotated. 0 defaults to 20.
	MaxSizeMB int
}

// RotatingWriter is an io.WriteCloser that streams log output through a
// size-capped file rotator, gzip-compressing rotated files. It is the file
// half of the console+file fan-out NewConsoleFileHandler builds.
type RotatingWriter struct {
	pipe *io.PipeWriter
}

// NewRotatingWriter creates the log directory if needed and starts the
// rotator goroutine, returning a writer that is immediately usable. Close
// flushes and stops the rotator.
func NewRotatingWriter(opts RotatorOptions) (*RotatingWriter, error) {
	name := opts.Name
	if name == "" {
		name = "actorcore"
	}
	maxFiles := opts.MaxFiles
	if maxFiles == 0 {
		maxFiles = 10
	} else if maxFiles < 0 {
		maxFiles = 0
	}
	maxSizeMB := opts.MaxSizeMB
	if maxSizeMB <= 0 {
		maxSizeMB = 20
	}

	if err := os.MkdirAll(opts.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("build: create log directory: %w", err)
	}

	// The rotator takes its size threshold in kilobytes.
	logFile := filepath.Join(opts.Dir, name+".log")
	rot, err := rotator.New(logFile, int64(maxSizeMB*1024), false, maxFiles)
	if err != nil {
		return nil, fmt.Errorf("build: create file rotator: %w", err)
	}
	rot.SetCompressor(gzip.NewWriter(nil), ".gz")

	// The rotator consumes from the read end of a pipe until the write
	// end is closed. It IS the log destination, so its own failures can
	// only go to stderr.
	pr, pw := io.Pipe()
	go func() {
		if err := rot.Run(pr); err != nil {
			fmt.Fprintf(os.Stderr, "build: log rotator stopped: %v\n", err)
		}
	}()

	return &RotatingWriter{pipe: pw}, nil
}

// Write feeds the rotator.
//
// NOTE: this is part of the io.Writer interface.
func (w *RotatingWriter) Write(p []byte) (int, error) {
	return w.pipe.Write(p)
}

// Close signals the rotator goroutine to flush remaining output and exit.
//
// NOTE: this is part of the io.Closer interface.
func (w *RotatingWriter) Close() error {
	return w.pipe.Close()
}
