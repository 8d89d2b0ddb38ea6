package blanketinternal

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"go.uber.org/zap"
)

var Version string

// Main is the main entry point for Blanket. It is used by the command-line
// tool directly.
//
// ctx can cancel the operation between files. wd is the path of the working
// directory which relative patterns and output paths are resolved against.
// log receives progress messages; it may be nil. outSuffix replaces the ".rs"
// extension of each expanded file to name its output. And patterns are the
// files to process: a file, a directory (its .rs files), or "dir/..." (every
// .rs file below dir).
//
// It returns a map of output file paths to their contents. Files without any
// #[blanket] trait produce no output. If any error occurs, it returns a
// non-nil error.
func Main(ctx context.Context, wd string, log *zap.SugaredLogger, outSuffix string, patterns []string) (map[string][]byte, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	files, err := expandPatterns(wd, outSuffix, patterns)
	if err != nil {
		return nil, err
	}
	log.Debugw("found source files", "count", len(files))

	fset := token.NewFileSet()
	outs := make(map[string][]byte)
	var errs error

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := file
		if rel, err := filepath.Rel(wd, file); err == nil {
			name = rel
		}

		src, err := os.ReadFile(file)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("failed to read source: %w", err))
			continue
		}

		b, err := New(fset, name, src)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if b.Len() == 0 {
			log.Debugw("no blanket trait", "file", name)
			continue
		}

		if err := b.Build(); err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		out := OutputPath(name, outSuffix)
		outs[out] = b.Generate()
		log.Infow("expanded", "file", name, "traits", b.Len(), "output", out)
	}
	if errs != nil {
		// errs already contains comprehensive error messages. So we don't need
		// to attach another error message.
		return nil, reorderErrors(errs)
	}

	return outs, nil
}

// OutputPath names the output of an expanded source file.
func OutputPath(file, outSuffix string) string {
	return strings.TrimSuffix(file, ".rs") + outSuffix
}

// expandPatterns resolves patterns to source files, sorted and without
// duplicates. Outputs of previous runs are never sources.
func expandPatterns(wd, outSuffix string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	isSource := func(path string) bool {
		return strings.HasSuffix(path, ".rs") && !strings.HasSuffix(path, outSuffix)
	}

	var files []string
	for _, pattern := range patterns {
		recursive := false
		if dir, ok := strings.CutSuffix(pattern, "..."); ok {
			recursive = true
			pattern = dir
			if pattern == "" {
				pattern = "."
			}
		}

		path := pattern
		if !filepath.IsAbs(path) {
			path = filepath.Join(wd, path)
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve pattern %q: %w", pattern, err)
		}
		if !info.IsDir() {
			if recursive {
				return nil, fmt.Errorf("pattern %q: not a directory", pattern)
			}
			files = append(files, path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p == path {
					return nil
				}
				if !recursive || strings.HasPrefix(d.Name(), ".") || d.Name() == "target" {
					return filepath.SkipDir
				}
				return nil
			}
			if isSource(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %q: %w", pattern, err)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no source files found: %v", patterns)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

func reorderErrors(errs error) error {
	if errs == nil {
		return nil
	}

	// Flatten nested errors
	list := []error{errs}
	for i := 0; i < len(list); i++ {
		if u, ok := list[i].(interface{ Unwrap() []error }); ok {
			// errors.Join collapses errors with a single error having Unwrap()
			// []error method. The underlying errors could be retrieved using
			// the Unwrap() method.
			list = append(list, u.Unwrap()...)
			list[i] = nil
		}
	}
	list = slices.DeleteFunc(list, func(err error) bool {
		return err == nil
	})

	// Sort errors by message
	sort.Slice(list, func(i, j int) bool {
		return list[i].Error() < list[j].Error()
	})
	return errors.Join(list...)
}
