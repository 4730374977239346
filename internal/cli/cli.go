// Package cli implements the pumlgen command-line interface.
//
// This package wires the generation pipeline to cobra commands. Options come
// from a pumlgen.toml project file when one is found and are overridden by
// any flag given explicitly on the command line.
//
// # Commands
//
// The main commands are:
//   - generate: Render the model into a PlantUML diagram tree
//   - graph: Render the whole model as one Graphviz diagram
//   - namespaces: List every namespace prefix of the model
//   - config: Create or locate the project file
//   - version: Print build information
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// stored on the command context and handed to the pipeline.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pumlgen/pkg/buildinfo"
	"github.com/matzehuels/pumlgen/pkg/model"
	"github.com/matzehuels/pumlgen/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and file names.
	appName = "pumlgen"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "pumlgen renders a type model as a tree of PlantUML class diagrams",
		Long: `pumlgen turns a model of classes, enumerations and their associations into
one PlantUML diagram per type, plus include manifests that let a single root
file reach every diagram of a namespace tree.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.namespacesCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// readProject reads and links the model described by opts. Commands that only
// inspect the model use it instead of a full generation run.
func (c *CLI) readProject(cmd *cobra.Command, opts pipeline.Options) (*model.Project, error) {
	opts.Logger = loggerFromContext(cmd.Context())
	p, err := c.newRunner().Read(cmd.Context(), opts)
	if err != nil {
		return nil, err
	}
	link, err := p.LinkSymbols()
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("linked symbols", "resolved", link.Resolved, "unresolved", link.Unresolved)
	return p, nil
}
