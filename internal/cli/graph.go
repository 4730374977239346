package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pumlerr "github.com/matzehuels/pumlgen/pkg/errors"
	"github.com/matzehuels/pumlgen/pkg/render/nodelink"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	model     modelFlags
	output    string // output file, stdout when empty
	format    string // dot, svg or png
	detailed  bool   // list attributes and enumeration members
	namespace string // restrict to a namespace subtree
}

func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "graph [model]",
		Short: "Render the whole model as one node-link diagram",
		Long: `Render every class and enumeration of the model as a single Graphviz
diagram. Namespaces become clusters, associations and base types become
edges. Useful as an overview before generating the diagram tree.`,
		Example: `  pumlgen graph model.yaml -o model.svg
  pumlgen graph --format dot --namespace Orders | dot -Tpdf > orders.pdf`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatDOT, formatSVG, formatPNG:
			default:
				return pumlerr.New(pumlerr.ErrCodeInvalidInput, "invalid format: %s (must be 'dot', 'svg' or 'png')", opts.format)
			}
			popts, _, err := opts.model.options(cmd, args)
			if err != nil {
				return err
			}
			p, err := c.readProject(cmd, popts)
			if err != nil {
				return err
			}

			dot := nodelink.ToDOT(p, nodelink.Options{Detailed: opts.detailed, Namespace: opts.namespace})
			data := []byte(dot)
			switch opts.format {
			case formatSVG:
				data, err = nodelink.RenderSVG(cmd.Context(), dot)
			case formatPNG:
				data, err = nodelink.RenderPNG(cmd.Context(), dot)
			}
			if err != nil {
				return fmt.Errorf("render %s: %w", opts.format, err)
			}

			if opts.output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(opts.output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", opts.output, err)
			}
			printSuccess("Graph rendered")
			printFile(opts.output)
			return nil
		},
	}

	opts.model.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, dot, png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "list attributes and enumeration members")
	cmd.Flags().StringVar(&opts.namespace, "namespace", "", "only draw this namespace and the ones below it")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{formatSVG, formatDOT, formatPNG}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
