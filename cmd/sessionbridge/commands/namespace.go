package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sessionbridge/internal/bridge"
	"sessionbridge/internal/domain"
)

func namespaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "namespace [name]",
		Short: "List storage namespaces or resolve one by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				ns, err := lookupNamespace(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ns)
				return nil
			}
			for _, name := range bridge.NamespaceNames() {
				ns, _ := bridge.Namespace(name)
				fmt.Fprintf(out, "%-24s %d\n", name, ns)
			}
			return nil
		},
	}
}

func lookupNamespace(name string) (domain.Namespace, error) {
	ns, ok := bridge.Namespace(strings.ToUpper(name))
	if !ok {
		return 0, fmt.Errorf("unknown namespace %q", name)
	}
	return ns, nil
}
