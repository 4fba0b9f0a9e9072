package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/rkhozinov/php-config-transofrmer/pkg/transform"
)

// concurrent file workers for async runs
const maxConcurrentFiles = 8

// 📄 LineChange records one line's classification within a file
type LineChange struct {
	Number   int    // 1-based line number
	Original string // input line, terminator included
	New      string // output line, terminator included
	Tag      transform.LineTag
}

// Changed reports whether the line was rewritten.
func (c LineChange) Changed() bool {
	return c.Tag == transform.TagTransformed
}

// 📊 FileResult aggregates the per-line outcomes for a single file
type FileResult struct {
	Path   string       // path relative to the source directory
	Lines  []LineChange // every line, in original order
	Output []byte       // reassembled file content

	TotalDefines    int // defines recognized on any line
	AlreadyMigrated int // defines already routed through the env lookup
	Transformed     int // defines rewritten
	Skipped         int // defines with unrecognized values, left alone
}

// Changed returns only the rewritten lines, in order.
func (r *FileResult) Changed() []LineChange {
	var changed []LineChange
	for _, line := range r.Lines {
		if line.Changed() {
			changed = append(changed, line)
		}
	}
	return changed
}

// HasChanges reports whether any line was rewritten.
func (r *FileResult) HasChanges() bool {
	return r.Transformed > 0
}

// ❌ FileError records a file that could not be processed
type FileError struct {
	Path string
	Err  error
}

// 📈 Summary aggregates a whole run
type Summary struct {
	Files            []*FileResult // successfully processed files, in scan order
	Errors           []FileError   // files that failed, in scan order
	FilesProcessed   int
	FilesWithChanges int
	TotalTransformed int
}

// 🔧 Options configures a Pipeline
type Options struct {
	Source      string                 // input directory, never mutated
	Output      string                 // output directory, created on demand
	Pattern     string                 // glob for candidate files
	Async       bool                   // process files concurrently
	Transformer *transform.Transformer // line transformer to apply
}

// 🚇 Pipeline runs the line transformer over every matched file in a
// source directory and writes the results to the output directory.
type Pipeline struct {
	source      string
	output      string
	async       bool
	transformer *transform.Transformer
	scanner     *Scanner
}

// 🏭 New creates a new pipeline
func New(opts Options) (*Pipeline, error) {
	if opts.Source == "" {
		return nil, errors.Errorf("source directory is required")
	}
	if opts.Output == "" {
		return nil, errors.Errorf("output directory is required")
	}
	if opts.Pattern == "" {
		return nil, errors.Errorf("file pattern is required")
	}
	if opts.Transformer == nil {
		return nil, errors.Errorf("transformer is required")
	}
	return &Pipeline{
		source:      opts.Source,
		output:      opts.Output,
		async:       opts.Async,
		transformer: opts.Transformer,
		scanner:     NewScanner(opts.Source, opts.Pattern),
	}, nil
}

// 📄 ProcessFile reads one file and classifies every line without writing
// anything. Input that cannot be read as UTF-8 text is a hard error; the
// transformer must not run over bytes it cannot interpret.
func (p *Pipeline) ProcessFile(ctx context.Context, rel string) (*FileResult, error) {
	abs := filepath.Join(p.source, filepath.FromSlash(rel))
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", rel, err)
	}
	if !utf8.Valid(data) {
		return nil, errors.Errorf("%s is not valid UTF-8 text", rel)
	}

	result := &FileResult{Path: rel}
	var out bytes.Buffer
	for i, line := range splitLines(string(data)) {
		newLine, tag := p.transformer.TransformLine(line)
		out.WriteString(newLine)
		result.Lines = append(result.Lines, LineChange{
			Number:   i + 1,
			Original: line,
			New:      newLine,
			Tag:      tag,
		})

		switch tag {
		case transform.TagAlreadyMigrated:
			result.TotalDefines++
			result.AlreadyMigrated++
		case transform.TagTransformed:
			result.TotalDefines++
			result.Transformed++
		case transform.TagSkipped:
			result.TotalDefines++
			result.Skipped++
		}
	}
	result.Output = out.Bytes()

	zerolog.Ctx(ctx).Debug().
		Str("file", rel).
		Int("defines", result.TotalDefines).
		Int("transformed", result.Transformed).
		Int("already_migrated", result.AlreadyMigrated).
		Int("skipped", result.Skipped).
		Msg("processed file")

	return result, nil
}

// 🏃 Run transforms every matched file and writes the results under the
// output directory, preserving relative paths. Inputs are never touched.
// Per-file failures do not stop the run; they are collected on the summary.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	return p.run(ctx, true)
}

// 👀 Preview performs the same classification pass as Run but writes
// nothing, for preview and statistics reporting.
func (p *Pipeline) Preview(ctx context.Context) (*Summary, error) {
	return p.run(ctx, false)
}

func (p *Pipeline) run(ctx context.Context, write bool) (*Summary, error) {
	files, err := p.scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*FileResult, len(files))
	errs := make([]error, len(files))

	process := func(i int, rel string) {
		result, err := p.ProcessFile(ctx, rel)
		if err != nil {
			errs[i] = err
			return
		}
		if write {
			if err := p.writeResult(result); err != nil {
				errs[i] = err
				return
			}
		}
		results[i] = result
	}

	if p.async {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxConcurrentFiles)
		for i, rel := range files {
			i, rel := i, rel
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				process(i, rel)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, errors.Errorf("processing files: %w", err)
		}
	} else {
		for i, rel := range files {
			process(i, rel)
		}
	}

	// Reassemble in scan order so reporting stays deterministic.
	summary := &Summary{}
	for i, rel := range files {
		if errs[i] != nil {
			summary.Errors = append(summary.Errors, FileError{Path: rel, Err: errs[i]})
			continue
		}
		result := results[i]
		summary.Files = append(summary.Files, result)
		summary.FilesProcessed++
		if result.HasChanges() {
			summary.FilesWithChanges++
		}
		summary.TotalTransformed += result.Transformed
	}
	return summary, nil
}

// 💾 writeResult writes a processed file under the output directory
func (p *Pipeline) writeResult(result *FileResult) error {
	dest := filepath.Join(p.output, filepath.FromSlash(result.Path))
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Errorf("creating output directory for %s: %w", result.Path, err)
	}
	if err := os.WriteFile(dest, result.Output, 0644); err != nil {
		return errors.Errorf("writing %s: %w", result.Path, err)
	}
	return nil
}

// splitLines splits content into lines, each keeping its own terminator so
// mixed LF/CRLF files survive byte-for-byte.
func splitLines(content string) []string {
	var lines []string
	for len(content) > 0 {
		idx := strings.IndexByte(content, '\n')
		if idx < 0 {
			lines = append(lines, content)
			break
		}
		lines = append(lines, content[:idx+1])
		content = content[idx+1:]
	}
	return lines
}
