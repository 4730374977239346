package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	pumlerr "github.com/matzehuels/pumlgen/pkg/errors"
	"github.com/matzehuels/pumlgen/pkg/pipeline"
)

// configFileName is the project file looked up from the working directory
// upwards.
const configFileName = appName + ".toml"

// fileConfig mirrors the sections of pumlgen.toml.
type fileConfig struct {
	Model struct {
		Input             string   `toml:"input"`
		TopLevelNamespace string   `toml:"top_level_namespace"`
		Excludes          []string `toml:"excludes"`
	} `toml:"model"`
	Output struct {
		Dir   string `toml:"dir"`
		Clear bool   `toml:"clear"`
	} `toml:"output"`
	Diagram struct {
		NoAssociations []string `toml:"no_associations"`
		Hide           []string `toml:"hide"`
	} `toml:"diagram"`
	Generate struct {
		Workers int `toml:"workers"`
	} `toml:"generate"`
}

const configTemplate = `# pumlgen project file

[model]
input = "model.yaml"
# top_level_namespace = ""
# excludes = []

[output]
dir = "uml"
clear = false

[diagram]
# Associations to types in these namespaces are drawn as attributes.
no_associations = []
# Types in these namespaces only appear in their own namespace.
hide = []

[generate]
# workers = 4
`

// findConfig walks from dir up to the filesystem root and returns the first
// pumlgen.toml found, or "" when there is none.
func findConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// loadConfig decodes a project file. Keys the file does not define are an
// error so typos do not pass silently.
func loadConfig(path string) (*fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, pumlerr.Wrap(pumlerr.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, pumlerr.Wrap(pumlerr.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, pumlerr.New(pumlerr.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return &cfg, nil
}

// resolveConfig returns the project file to use: the explicit path when
// given, otherwise the nearest pumlgen.toml above the working directory.
func resolveConfig(explicit string) (string, *fileConfig, error) {
	path := explicit
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", nil, err
		}
		if path, err = findConfig(wd); err != nil || path == "" {
			return "", nil, err
		}
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return "", nil, err
	}
	return path, cfg, nil
}

// apply copies file values into opts. Relative paths are taken relative to
// the directory holding the project file.
func (f *fileConfig) apply(opts *pipeline.Options, path string) {
	base := filepath.Dir(path)
	rel := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	opts.Input = rel(f.Model.Input)
	opts.TopLevelNamespace = f.Model.TopLevelNamespace
	opts.Excludes = f.Model.Excludes
	opts.Output = rel(f.Output.Dir)
	opts.Clear = f.Output.Clear
	opts.NoAssociations = f.Diagram.NoAssociations
	opts.Hide = f.Diagram.Hide
	opts.Workers = f.Generate.Workers
}

// =============================================================================
// Command
// =============================================================================

func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the pumlgen.toml project file",
	}
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configPathCommand())
	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a commented pumlgen.toml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path := filepath.Join(dir, configFileName)
			if _, err := os.Stat(path); err == nil && !force {
				return pumlerr.New(pumlerr.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}
			if err := os.WriteFile(path, []byte(configTemplate), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			printSuccess("Created %s", path)
			printNextStep("Generate diagrams", appName+" generate")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the project file in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, cfg, err := resolveConfig("")
			if err != nil {
				return err
			}
			if path == "" {
				printWarning("No %s found", configFileName)
				return nil
			}
			var opts pipeline.Options
			cfg.apply(&opts, path)
			printKeyValue("File", path)
			printKeyValue("Input", opts.Input)
			printKeyValue("Output", opts.Output)
			return nil
		},
	}
}
