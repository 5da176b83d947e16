package gen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/inovahubco/brickend/engine/regions"
	"github.com/inovahubco/brickend/engine/templates"
)

// defaultWorkers bounds the number of files rendered and written
// concurrently when the caller does not set a limit.
const defaultWorkers = 4

// Result reports what a generation run produced. Written maps a
// component name to the output paths written for it, relative to the
// output directory. Warnings collects non-fatal conditions such as
// skipped optional components.
type Result struct {
	Written  map[string][]string
	Warnings []string
}

// Files returns the total number of files written.
func (r *Result) Files() int {
	n := 0
	for _, paths := range r.Written {
		n += len(paths)
	}
	return n
}

// Generator renders a stack's templates against a render context and
// writes the output tree, preserving protected regions in files that
// already exist. A Generator is safe to reuse across runs.
type Generator struct {
	registry *templates.Registry
	merger   *regions.Merger
	outDir   string
	workers  int
	logger   *slog.Logger
	preserve bool
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithWorkers sets the number of concurrent render-and-write workers.
func WithWorkers(n int) GeneratorOption {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// WithGenLogger sets the logger used for warnings and progress.
func WithGenLogger(l *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = l
	}
}

// WithoutRegionMerge disables protected-region preservation; existing
// files are overwritten wholesale.
func WithoutRegionMerge() GeneratorOption {
	return func(g *Generator) {
		g.preserve = false
	}
}

// NewGenerator returns a Generator writing into outDir using templates
// resolved through the given registry.
func NewGenerator(registry *templates.Registry, outDir string, opts ...GeneratorOption) *Generator {
	g := &Generator{
		registry: registry,
		outDir:   outDir,
		workers:  defaultWorkers,
		logger:   slog.Default(),
		preserve: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.merger = regions.New(regions.WithLogger(g.logger))
	return g
}

// fileTask is one output file to render and write.
type fileTask struct {
	component string
	tmpl      *templates.Template
	relPath   string
	data      *RenderContext
}

// Generate renders every component of the project's stack against the
// context and writes the resulting files under the output directory.
// Directories are created as needed. Required single-file components
// abort the run when their template is missing; optional per-entity
// components are skipped with a warning. Files already written before
// an abort are left in place.
func (g *Generator) Generate(ctx context.Context, rc *RenderContext, project ProjectInfo) (*Result, error) {
	if rc == nil || rc.EntityCount == 0 {
		return nil, NewConfigError("Entities", nil, "at least one entity is required")
	}
	if project.Stack == "" {
		return nil, NewConfigError("Stack", "", "project stack is not set")
	}
	stack := StackFor(project.Stack)

	components := g.registry.Components(stack.Category, stack.Name)
	if len(components) == 0 {
		g.logger.Warn("no templates discovered for stack, using fallback components",
			"stack", stack.Name)
		components = stack.Fallback
	}
	if len(components) == 0 {
		return nil, NewConfigError("Stack", stack.Name, "no components to generate")
	}

	rc = rc.WithProject(project)
	result := &Result{Written: make(map[string][]string)}

	tasks, err := g.plan(stack, components, rc, result)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, NewConfigError("Stack", stack.Name, "no files to generate")
	}

	var mu sync.Mutex
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for _, task := range tasks {
		t := task
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if err := g.writeOne(t); err != nil {
				return err
			}
			mu.Lock()
			result.Written[t.component] = append(result.Written[t.component], t.relPath)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if err := g.writeMarkers(stack, result); err != nil {
		return nil, err
	}
	for _, paths := range result.Written {
		sort.Strings(paths)
	}
	return result, nil
}

// plan resolves templates up front and expands components into file
// tasks. Missing required templates fail here, before anything is
// written; missing optional ones only add a warning.
func (g *Generator) plan(stack *Stack, components []string, rc *RenderContext, result *Result) ([]fileTask, error) {
	var tasks []fileTask
	for _, comp := range components {
		if rel, ok := stack.SingleFile[comp]; ok {
			tmpl, err := g.registry.Resolve(stack.Category, stack.Name, comp)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, fileTask{component: comp, tmpl: tmpl, relPath: rel, data: rc})
			continue
		}
		if _, ok := stack.PerEntity[comp]; ok {
			tmpl, err := g.registry.Resolve(stack.Category, stack.Name, comp)
			if err != nil {
				warning := fmt.Sprintf("template for component %q not found, skipping", comp)
				g.logger.Warn("skipping component", "component", comp, "stack", stack.Name)
				result.Warnings = append(result.Warnings, warning)
				continue
			}
			for i := range rc.Entities {
				entity := &rc.Entities[i]
				tasks = append(tasks, fileTask{
					component: comp,
					tmpl:      tmpl,
					relPath:   stack.EntityPath(comp, entity.Names.Snake),
					data:      rc.WithEntity(entity),
				})
			}
			continue
		}
		warning := fmt.Sprintf("component %q has no output mapping for stack %q, skipping", comp, stack.Name)
		g.logger.Warn("component has no output mapping", "component", comp, "stack", stack.Name)
		result.Warnings = append(result.Warnings, warning)
	}
	return tasks, nil
}

// writeOne renders a single task, merges protected regions from any
// existing file at the target path, and writes the result.
func (g *Generator) writeOne(t fileTask) error {
	content, err := g.registry.Render(t.tmpl, t.data)
	if err != nil {
		return err
	}
	target := filepath.Join(g.outDir, filepath.FromSlash(t.relPath))
	if g.preserve {
		content = g.merger.Preserve(target, content)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return NewWriteError(target, err)
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return NewWriteError(target, err)
	}
	return nil
}

// writeMarkers ensures package marker files exist in the stack's output
// directories. Existing markers are left untouched so user additions to
// them survive regeneration.
func (g *Generator) writeMarkers(stack *Stack, result *Result) error {
	markers := append([]string(nil), stack.Markers...)
	for comp, dir := range stack.PerEntity {
		if len(result.Written[comp]) > 0 {
			markers = append(markers, dir+"/__init__.py")
		}
	}
	for _, rel := range markers {
		target := filepath.Join(g.outDir, filepath.FromSlash(rel))
		if _, err := os.Stat(target); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return NewWriteError(target, err)
		}
		if err := os.WriteFile(target, nil, 0o644); err != nil {
			return NewWriteError(target, err)
		}
	}
	return nil
}
