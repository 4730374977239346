package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pumlgen/pkg/model"
	"github.com/matzehuels/pumlgen/pkg/namespace"
)

func (c *CLI) namespacesCommand() *cobra.Command {
	var flags modelFlags
	var counts bool

	cmd := &cobra.Command{
		Use:   "namespaces [model]",
		Short: "List every namespace prefix of the model",
		Long: `List every namespace prefix of the model, one per line and sorted. These
are the section names of the generated namespace configuration file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, err := flags.options(cmd, args)
			if err != nil {
				return err
			}
			p, err := c.readProject(cmd, opts)
			if err != nil {
				return err
			}
			prefixes := namespace.AllPrefixes(p.Namespaces()...)
			slices.Sort(prefixes)

			out := cmd.OutOrStdout()
			if !counts {
				for _, ns := range prefixes {
					fmt.Fprintln(out, ns)
				}
				return nil
			}
			perNamespace := countByNamespace(p)
			for _, ns := range prefixes {
				fmt.Fprintf(out, "%s\t%d\n", ns, perNamespace[ns])
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&counts, "count", false, "print the number of types declared directly in each namespace")

	return cmd
}

func countByNamespace(p *model.Project) map[string]int {
	counts := make(map[string]int)
	for _, obj := range p.Objects() {
		counts[obj.Namespace()]++
	}
	return counts
}
