package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	pumlerr "github.com/matzehuels/pumlgen/pkg/errors"
	pkgio "github.com/matzehuels/pumlgen/pkg/io"
	"github.com/matzehuels/pumlgen/pkg/model"
	"github.com/matzehuels/pumlgen/pkg/namespace"
	"github.com/matzehuels/pumlgen/pkg/observability"
	"github.com/matzehuels/pumlgen/pkg/render/puml"
	"github.com/matzehuels/pumlgen/pkg/render/puml/manifest"
	"github.com/matzehuels/pumlgen/pkg/sink"
)

// Runner executes generation runs.
//
// The Runner is stateless except for the logger - it doesn't store results.
// Multiple goroutines can safely use the same Runner with different options,
// as long as they write to different outputs.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger uses log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete read → link → render pipeline. With DryRun set,
// files go to a memory sink and nothing touches the filesystem.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	readStart := time.Now()
	p, err := r.Read(ctx, opts)
	if err != nil {
		return nil, err
	}
	readTime := time.Since(readStart)

	var out sink.Sink
	if opts.DryRun {
		out = sink.NewMemory()
	} else {
		out = sink.NewDir(opts.Output)
	}

	result, err := r.Generate(ctx, p, out, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ReadTime = readTime
	return result, nil
}

// Read decodes the input model into an unlinked project.
func (r *Runner) Read(ctx context.Context, opts Options) (*model.Project, error) {
	if err := opts.ValidateForRead(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnReadStart(ctx, opts.Input)

	start := time.Now()
	p, err := pkgio.ImportModel(opts.Input, opts.ReadOptions())
	duration := time.Since(start)
	if err != nil {
		hooks.OnReadComplete(ctx, opts.Input, 0, duration, err)
		return nil, classify(err, pumlerr.ErrCodeInvalidModel, "read model")
	}
	hooks.OnReadComplete(ctx, opts.Input, p.Len(), duration, nil)

	r.logger(opts).Info("read model",
		"input", opts.Input,
		"classes", len(p.Classes()),
		"enumerations", len(p.Enumerations()),
		"duration", duration)
	return p, nil
}

// Generate links p if needed and writes its diagrams to out.
func (r *Runner) Generate(ctx context.Context, p *model.Project, out sink.Sink, opts Options) (*Result, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.logger(opts)
	hooks := observability.Pipeline()

	result := &Result{Project: p}
	result.Stats.Classes = len(p.Classes())
	result.Stats.Enumerations = len(p.Enumerations())

	// Stage 1: Link
	if !p.Linked() {
		start := time.Now()
		link, err := p.LinkSymbols()
		if err != nil {
			return nil, classify(err, pumlerr.ErrCodeInternal, "link symbols")
		}
		result.Link = link
		result.Stats.LinkTime = time.Since(start)
		hooks.OnLinkComplete(ctx, link.Resolved, link.Unresolved, result.Stats.LinkTime)
		logger.Info("linked symbols",
			"resolved", link.Resolved,
			"unresolved", link.Unresolved,
			"duration", result.Stats.LinkTime)
	}

	// Plan before touching the output so a bad model leaves it intact.
	objects := p.Objects()
	paths, tree, err := planFiles(objects)
	if err != nil {
		return nil, err
	}

	// Stage 2: Prepare output, once, before any write.
	if err := out.Prepare(ctx, opts.Clear, puml.ConfigFileName); err != nil {
		return nil, classify(err, pumlerr.ErrCodeInternal, "prepare output")
	}
	observability.Output().OnPrepare(ctx, out.Location(), opts.Clear)
	logger.Debug("prepared output", "location", out.Location(), "clear", opts.Clear)

	// Stage 3: Render type files in parallel.
	start := time.Now()
	hooks.OnRenderStart(ctx, len(objects))
	err = r.renderTypes(ctx, puml.New(p, opts.RenderOptions()), out, objects, paths, opts.Workers)
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, len(objects), result.Stats.RenderTime, err)
	if err != nil {
		return nil, classify(err, pumlerr.ErrCodeInternal, "render diagrams")
	}
	result.Stats.TypeFiles = len(paths)
	result.Files = append(result.Files, paths...)

	// Stage 4: Namespace configuration and manifests.
	updated, err := r.writeConfig(ctx, out, p)
	if err != nil {
		return nil, classify(err, pumlerr.ErrCodeInternal, "write namespace configuration")
	}
	result.ConfigUpdated = updated
	if updated {
		result.Files = append(result.Files, puml.ConfigFileName)
	}

	for _, m := range tree.Manifests() {
		if err := r.write(ctx, out, m.Path, m.Content); err != nil {
			return nil, classify(err, pumlerr.ErrCodeInternal, "write manifest %s", m.Path)
		}
		result.Files = append(result.Files, m.Path)
		result.Stats.Manifests++
	}

	slices.Sort(result.Files)
	logger.Info("rendered diagrams",
		"files", result.Stats.TypeFiles,
		"manifests", result.Stats.Manifests,
		"config_updated", result.ConfigUpdated,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// planFiles maps every entity to its type file and builds the folder tree.
// Two entities mapping to the same path is an error, and so is an entity
// whose file would replace a folder manifest or the namespace configuration
// file.
func planFiles(objects []model.NamespacedObject) ([]string, *manifest.Tree, error) {
	tree := manifest.New()
	paths := make([]string, len(objects))
	owner := make(map[string]string, len(objects))
	for i, obj := range objects {
		p := puml.FilePath(obj)
		if reserved(p) {
			return nil, nil, pumlerr.New(pumlerr.ErrCodeInvalidModel,
				"%s %s maps to %s, which is reserved for generated includes", obj.Kind(), obj.FullName(), p)
		}
		if prev, taken := owner[p]; taken {
			return nil, nil, pumlerr.New(pumlerr.ErrCodeDuplicateEntity,
				"%s and %s both map to %s", prev, obj.FullName(), p)
		}
		owner[p] = obj.FullName()
		paths[i] = p
		tree.Add(p)
	}
	return paths, tree, nil
}

func reserved(p string) bool {
	return p == puml.ConfigFileName || path.Base(p) == manifest.FileName
}

func (r *Runner) renderTypes(ctx context.Context, renderer *puml.Renderer, out sink.Sink, objects []model.NamespacedObject, paths []string, workers int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, obj := range objects {
		g.Go(func() error {
			data, err := renderer.Render(obj)
			if err != nil {
				return err
			}
			if err := r.write(gctx, out, paths[i], data); err != nil {
				return fmt.Errorf("write %s: %w", paths[i], err)
			}
			return nil
		})
	}
	return g.Wait()
}

// writeConfig creates the namespace configuration file or appends the
// sections it is missing. Existing content is never rewritten.
func (r *Runner) writeConfig(ctx context.Context, out sink.Sink, p *model.Project) (bool, error) {
	existing, err := out.ReadFile(ctx, puml.ConfigFileName)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	merged, changed := puml.MergeConfig(existing, namespace.AllPrefixes(p.Namespaces()...))
	if !changed {
		return false, nil
	}
	return true, r.write(ctx, out, puml.ConfigFileName, merged)
}

func (r *Runner) write(ctx context.Context, out sink.Sink, path string, data []byte) error {
	if err := out.WriteFile(ctx, path, data); err != nil {
		return err
	}
	observability.Output().OnFileWritten(ctx, path, len(data))
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// classify wraps err in a coded error. Errors that already carry a code are
// returned unchanged.
func classify(err error, fallback pumlerr.Code, format string, args ...any) error {
	if pumlerr.GetCode(err) != "" {
		return err
	}
	code := fallback
	switch {
	case errors.Is(err, model.ErrDuplicateEntity):
		code = pumlerr.ErrCodeDuplicateEntity
	case errors.Is(err, model.ErrMissingContext):
		code = pumlerr.ErrCodeMissingContext
	case errors.Is(err, model.ErrEmptyName):
		code = pumlerr.ErrCodeInvalidModel
	case errors.Is(err, sink.ErrOutputNotEmpty):
		code = pumlerr.ErrCodeOutputNotEmpty
	case errors.Is(err, fs.ErrNotExist):
		code = pumlerr.ErrCodeFileNotFound
	}
	return pumlerr.Wrap(code, err, format, args...)
}
