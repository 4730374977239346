package cli

import (
	"context"

	"github.com/spf13/cobra"

	pumlerr "github.com/matzehuels/pumlgen/pkg/errors"
	"github.com/matzehuels/pumlgen/pkg/pipeline"
)

// modelFlags holds the flags shared by every command that reads a model.
type modelFlags struct {
	config   string
	topLevel string
	excludes []string
}

func (f *modelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.config, "config", "", "project file (default: nearest "+configFileName+")")
	cmd.Flags().StringVar(&f.topLevel, "top-level", "", "namespace stripped from the front of every namespace")
	cmd.Flags().StringSliceVar(&f.excludes, "exclude", nil, "namespaces or full names to skip (repeatable)")
}

// options builds pipeline options from the project file and the flags given
// explicitly. The model file argument, when present, wins over the file.
func (f *modelFlags) options(cmd *cobra.Command, args []string) (pipeline.Options, string, error) {
	var opts pipeline.Options
	path, cfg, err := resolveConfig(f.config)
	if err != nil {
		return opts, "", err
	}
	if cfg != nil {
		cfg.apply(&opts, path)
	}
	if len(args) > 0 {
		opts.Input = args[0]
	}
	flags := cmd.Flags()
	if flags.Changed("top-level") {
		opts.TopLevelNamespace = f.topLevel
	}
	if flags.Changed("exclude") {
		opts.Excludes = f.excludes
	}
	if opts.Input == "" {
		return opts, "", pumlerr.New(pumlerr.ErrCodeInvalidInput, "no model file given and none set in %s", configFileName)
	}
	opts.Logger = loggerFromContext(cmd.Context())
	return opts, path, nil
}

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	model          modelFlags
	output         string
	noAssociations []string
	hide           []string
	clear          bool
	dryRun         bool
	watch          bool
	workers        int
}

func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [model]",
		Short: "Render a model into a tree of PlantUML diagrams",
		Long: `Render one PlantUML diagram per class and enumeration of the model, the
shared namespace configuration file and an include manifest per folder.

The model file is YAML, or JSON when its name ends in .json. Settings not
given as flags are taken from the nearest pumlgen.toml.`,
		Example: `  pumlgen generate model.yaml -o docs/uml
  pumlgen generate --clear --hide Infrastructure
  pumlgen generate --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, configPath, err := opts.pipelineOptions(cmd, args)
			if err != nil {
				return err
			}
			if opts.watch {
				if popts.DryRun {
					return pumlerr.New(pumlerr.ErrCodeInvalidInput, "--watch cannot be combined with --dry-run")
				}
				return c.watch(cmd.Context(), popts, configPath)
			}
			return c.runGenerate(cmd.Context(), popts)
		},
	}

	opts.model.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default: "+pipeline.DefaultOutput+")")
	cmd.Flags().StringSliceVar(&opts.noAssociations, "no-associations", nil, "namespaces drawn as attributes from other namespaces (repeatable)")
	cmd.Flags().StringSliceVar(&opts.hide, "hide", nil, "namespaces hidden from other namespaces (repeatable)")
	cmd.Flags().BoolVar(&opts.clear, "clear", false, "clear the output directory first")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "render in memory and list the files")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "regenerate when the model or project file changes")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "concurrent diagram writers (default: number of CPUs)")

	return cmd
}

func (o *generateOpts) pipelineOptions(cmd *cobra.Command, args []string) (pipeline.Options, string, error) {
	popts, path, err := o.model.options(cmd, args)
	if err != nil {
		return popts, "", err
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		popts.Output = o.output
	}
	if flags.Changed("no-associations") {
		popts.NoAssociations = o.noAssociations
	}
	if flags.Changed("hide") {
		popts.Hide = o.hide
	}
	if flags.Changed("clear") {
		popts.Clear = o.clear
	}
	if flags.Changed("workers") {
		popts.Workers = o.workers
	}
	popts.DryRun = o.dryRun
	return popts, path, nil
}

func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options) error {
	prog := newProgress(opts.Logger)
	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		if pumlerr.Is(err, pumlerr.ErrCodeOutputNotEmpty) {
			printDetail("use --clear to replace the existing files")
		}
		return err
	}
	prog.done("generated diagrams", "files", result.Stats.TypeFiles, "manifests", result.Stats.Manifests)

	if opts.DryRun {
		printInfo("Dry run, nothing written")
		for _, f := range result.Files {
			printFile(f)
		}
	} else {
		printSuccess("Wrote %s", StyleHighlight.Render(opts.Output))
	}
	printStats(result.Stats.Classes, result.Stats.Enumerations, result.Stats.Manifests, result.ConfigUpdated)
	if result.Link.Unresolved > 0 {
		printWarning("%d references could not be resolved and are drawn as attributes", result.Link.Unresolved)
	}
	return nil
}

// watch generates once, then regenerates with a cleared output whenever the
// model or the project file changes. It returns when ctx is cancelled.
func (c *CLI) watch(ctx context.Context, opts pipeline.Options, configPath string) error {
	if err := c.runGenerate(ctx, opts); err != nil {
		printError("%s", pumlerr.UserMessage(err))
	}
	opts.Clear = true

	fw, err := newFileWatcher(opts.Input, configPath)
	if err != nil {
		return err
	}
	defer fw.Close()
	printInfo("Watching %s for changes", opts.Input)

	return fw.run(ctx, watchDebounce, opts.Logger, func(ctx context.Context) {
		if configPath != "" {
			next, err := c.reloadConfig(opts, configPath)
			if err != nil {
				printError("%s", pumlerr.UserMessage(err))
				return
			}
			opts = next
		}
		if err := c.runGenerate(ctx, opts); err != nil {
			printError("%s", pumlerr.UserMessage(err))
		}
	})
}

// reloadConfig rereads the project file, keeping runtime settings.
// Flags are not reapplied, so a changed project file wins.
func (c *CLI) reloadConfig(prev pipeline.Options, path string) (pipeline.Options, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return prev, err
	}
	var next pipeline.Options
	cfg.apply(&next, path)
	if next.Input == "" {
		next.Input = prev.Input
	}
	if next.Output == "" {
		next.Output = prev.Output
	}
	next.Clear = true
	next.Logger = prev.Logger
	return next, nil
}
