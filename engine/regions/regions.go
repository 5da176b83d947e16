// Package regions preserves hand-written code across regenerations.
// Protected regions are delimited by paired full-line comment markers:
//
//	# BRICKEND:PROTECTED-START region_name
//	... custom code ...
//	# BRICKEND:PROTECTED-END region_name
//
// Extraction pulls named regions out of an existing file; injection
// splices them back into freshly rendered content at heuristically
// determined anchor points. The marker syntax is stable: generated files
// produced by earlier versions of the tool must keep round-tripping.
package regions

import (
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"
)

var (
	startPattern = regexp.MustCompile(`^\s*#\s*BRICKEND:PROTECTED-START\s+(\w+)\s*$`)
	endPattern   = regexp.MustCompile(`^\s*#\s*BRICKEND:PROTECTED-END\s+(\w+)\s*$`)
)

// Region is one named block of hand-written text, including its own
// start and end marker lines.
type Region struct {
	Name  string
	Lines []string
}

// Set maps region names to extracted regions. A Set lives for a single
// merge operation and is discarded after use.
type Set map[string]Region

// Merger extracts and reinjects protected regions. The zero value is not
// usable; construct with New.
type Merger struct {
	logger *slog.Logger
}

// Option configures a Merger.
type Option func(*Merger)

// WithLogger sets the logger used for merge warnings.
func WithLogger(l *slog.Logger) Option {
	return func(m *Merger) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a Merger.
func New(opts ...Option) *Merger {
	m := &Merger{logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Extract scans content line by line and returns all well-formed
// protected regions. A start marker opens a region, discarding any
// previously open unterminated one; an end marker closes the open region
// only when its name matches, and is dropped otherwise. Malformed and
// orphan markers yield no region. Extract never fails.
func (m *Merger) Extract(content string) Set {
	set := make(Set)
	var open string
	var lines []string

	for _, line := range splitLines(content) {
		switch {
		case startPattern.MatchString(line):
			open = startPattern.FindStringSubmatch(line)[1]
			lines = []string{line}
		case endPattern.MatchString(line) && open != "":
			if endPattern.FindStringSubmatch(line)[1] == open {
				lines = append(lines, line)
				set[open] = Region{Name: open, Lines: lines}
				open = ""
				lines = nil
			}
		case open != "":
			lines = append(lines, line)
		}
	}
	return set
}

// Inject splices the given regions into newly rendered content. Region
// names are processed in lexical order so placement is deterministic.
// The anchor heuristic scans lines in order: after an import line whose
// next non-blank line begins a top-level function definition, all
// unconsumed regions are injected, each surrounded by blank lines. Any
// region left unanchored is placed immediately before the last top-level
// function definition, or appended at end of file when there is none.
// Each region is injected at most once.
func (m *Merger) Inject(newContent string, set Set) string {
	if len(set) == 0 {
		return newContent
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := splitLines(newContent)
	result := make([]string, 0, len(lines))
	injected := make(map[string]bool, len(set))

	for i, line := range lines {
		result = append(result, line)
		if len(injected) == len(set) || !anchorAt(lines, i) {
			continue
		}
		for _, name := range names {
			if injected[name] {
				continue
			}
			result = append(result, "")
			result = append(result, set[name].Lines...)
			result = append(result, "")
			injected[name] = true
		}
	}

	var remaining []string
	for _, name := range names {
		if !injected[name] {
			remaining = append(remaining, name)
		}
	}
	if len(remaining) > 0 {
		var block []string
		for _, name := range remaining {
			block = append(block, "")
			block = append(block, set[name].Lines...)
			block = append(block, "")
		}
		if at := lastFunctionLine(result); at >= 0 {
			result = append(result[:at], append(block, result[at:]...)...)
		} else {
			result = append(result, block...)
		}
	}

	out := strings.Join(result, "\n")
	if strings.HasSuffix(newContent, "\n") && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// Preserve reads the file at path, extracts its protected regions and
// injects them into newContent. A missing file returns newContent
// unchanged. Any read failure degrades to returning newContent with a
// warning: the merge step must never abort a generation run.
func (m *Merger) Preserve(path, newContent string) string {
	existing, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warn("could not preserve protected regions",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
		return newContent
	}
	return m.Inject(newContent, m.Extract(string(existing)))
}

// anchorAt reports whether lines[i] is an injection anchor: an import
// line whose next non-blank line begins a top-level function definition.
func anchorAt(lines []string, i int) bool {
	if !isImportLine(lines[i]) {
		return false
	}
	for j := i + 1; j < len(lines); j++ {
		next := strings.TrimSpace(lines[j])
		if next == "" {
			continue
		}
		return isFunctionLine(lines[j])
	}
	return false
}

// lastFunctionLine returns the index of the last top-level function
// definition, or -1.
func lastFunctionLine(lines []string) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if isFunctionLine(lines[i]) {
			return i
		}
	}
	return -1
}

func isImportLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "from ")
}

// isFunctionLine matches only top-level definitions: indented method
// bodies are not anchor targets.
func isFunctionLine(line string) bool {
	return strings.HasPrefix(line, "def ") || strings.HasPrefix(line, "async def ")
}

func splitLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
