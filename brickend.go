// Package brickend wires the generation pipeline together: it loads a
// project file, validates the declared entities into a render context,
// resolves stack templates across the user override root and the
// embedded core root, and writes the generated backend tree.
package brickend

import (
	"context"
	"log/slog"
	"os"

	"github.com/inovahubco/brickend/config"
	"github.com/inovahubco/brickend/engine/gen"
	"github.com/inovahubco/brickend/engine/templates"
	"github.com/inovahubco/brickend/integrations"
)

// Version is the tool version, stamped at release time.
var Version = "dev"

// Pipeline is a loaded, validated project ready to generate. Build one
// with Open, then call Generate as often as the project file changes.
type Pipeline struct {
	Config   *config.Config
	Context  *gen.RenderContext
	Registry *templates.Registry

	logger *slog.Logger
	genOps []gen.GeneratorOption
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger passed through to the generator.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
		p.genOps = append(p.genOps, gen.WithGenLogger(l))
	}
}

// WithGeneratorOptions forwards options to the underlying generator.
func WithGeneratorOptions(opts ...gen.GeneratorOption) Option {
	return func(p *Pipeline) {
		p.genOps = append(p.genOps, opts...)
	}
}

// Open loads the project file at path and validates its entities. The
// returned pipeline holds an immutable render context; reopen after the
// project file changes.
func Open(path string, opts ...Option) (*Pipeline, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	rc, err := gen.Build(cfg.Records())
	if err != nil {
		return nil, err
	}
	p := &Pipeline{
		Config:  cfg,
		Context: rc,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.Registry = templates.NewRegistry(os.DirFS(cfg.ResolveTemplatesDir()), integrations.Core())
	return p, nil
}

// Generate renders the project's stack into the configured output
// directory.
func (p *Pipeline) Generate(ctx context.Context) (*gen.Result, error) {
	g := gen.NewGenerator(p.Registry, p.Config.ResolveOutputDir(), p.genOps...)
	return g.Generate(ctx, p.Context, p.Config.Info())
}

// Generate is the one-shot convenience form: load, validate and generate
// from the project file at path.
func Generate(ctx context.Context, path string, opts ...Option) (*gen.Result, error) {
	p, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	return p.Generate(ctx)
}

// Validate loads the project file and builds its render context without
// writing anything. It returns the context so callers can report entity
// and field counts.
func Validate(path string) (*gen.RenderContext, error) {
	p, err := Open(path)
	if err != nil {
		return nil, err
	}
	return p.Context, nil
}
