package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var kubeTypesCmd = &cobra.Command{
	Use:   "kube-types",
	Short: "List available kube types",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		types, err := newClient(cfg).KubeTypes()
		if err != nil {
			fatal("%v", err)
		}

		names := make([]string, 0, len(types))
		for name := range types {
			names = append(names, name)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		for _, name := range names {
			fmt.Fprintf(w, "%d\t%s\n", types[name], name)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(kubeTypesCmd)
}
