package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/PauloAguilarSoliz/proyeccion-ventas/internal/ingest"
)

// WorkbookSource yields the named workbook byte streams one pipeline run
// consumes. Implementations own discovery only; interpreting the content is
// the harvester's job.
type WorkbookSource interface {
	Workbooks(ctx context.Context) ([]ingest.Input, error)
}

// FileSource wraps an explicit list of workbook paths, e.g. CLI arguments.
type FileSource struct {
	paths  []string
	logger zerolog.Logger
}

// NewFiles builds a source over explicit paths.
func NewFiles(paths []string, logger zerolog.Logger) *FileSource {
	return &FileSource{paths: paths, logger: logger.With().Str("component", "file_source").Logger()}
}

// Workbooks loads each named file. Unreadable files still produce an input
// whose reader surfaces the error, so the harvester can isolate and report
// the failure per file instead of aborting the run.
func (s *FileSource) Workbooks(ctx context.Context) ([]ingest.Input, error) {
	if len(s.paths) == 0 {
		return nil, fmt.Errorf("source: no workbook files given")
	}
	return loadPaths(ctx, s.paths), nil
}

// DirSource discovers workbooks through a glob pattern, for watch mode.
type DirSource struct {
	glob   string
	logger zerolog.Logger
}

// NewDir builds a glob-based source.
func NewDir(glob string, logger zerolog.Logger) *DirSource {
	return &DirSource{glob: glob, logger: logger.With().Str("component", "dir_source").Logger()}
}

// Workbooks expands the glob and loads every spreadsheet it matches, in
// stable name order.
func (s *DirSource) Workbooks(ctx context.Context) ([]ingest.Input, error) {
	if s.glob == "" {
		return nil, fmt.Errorf("source: watch.input_glob not configured")
	}
	matches, err := filepath.Glob(s.glob)
	if err != nil {
		return nil, fmt.Errorf("expand glob %q: %w", s.glob, err)
	}

	var paths []string
	for _, match := range matches {
		switch strings.ToLower(filepath.Ext(match)) {
		case ".xlsx", ".xlsm":
			paths = append(paths, match)
		}
	}
	sort.Strings(paths)

	s.logger.Debug().Str("glob", s.glob).Int("matched", len(paths)).Msg("workbooks discovered")
	return loadPaths(ctx, paths), nil
}

func loadPaths(ctx context.Context, paths []string) []ingest.Input {
	inputs := make([]ingest.Input, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			break
		}
		name := filepath.Base(path)
		data, err := os.ReadFile(path)
		if err != nil {
			inputs = append(inputs, ingest.Input{Name: name, Reader: errReader{err: err}})
			continue
		}
		inputs = append(inputs, ingest.Input{Name: name, Reader: bytes.NewReader(data)})
	}
	return inputs
}

// errReader defers a load failure to read time so it flows through the
// harvester's per-file error isolation.
type errReader struct {
	err error
}

func (r errReader) Read([]byte) (int, error) {
	return 0, r.err
}
