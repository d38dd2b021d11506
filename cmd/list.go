package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending pod drafts",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		names := newStore(cfg).List()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME")
		for _, name := range names {
			fmt.Fprintf(w, "%s\n", name)
		}
		w.Flush()
	},
}

var describeCmd = &cobra.Command{
	Use:   "describe NAME",
	Short: "Print a pending pod draft",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		d, ok := newStore(cfg).Load(args[0])
		if !ok {
			fatal("no such item")
		}
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			fatal("failed to render draft: %v", err)
		}
		fmt.Println(string(data))
	},
}

var forgetAll bool

var forgetCmd = &cobra.Command{
	Use:   "forget [NAME]",
	Short: "Delete one pending pod draft, or all of them",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		st := newStore(cfg)

		if forgetAll {
			if err := st.DeleteAll(); err != nil {
				fatal("%v", err)
			}
			fmt.Println("✅ All drafts forgotten")
			return
		}
		if len(args) == 0 {
			fatal("a draft name or --all is expected")
		}
		if err := st.Delete(args[0]); err != nil {
			fatal("%v", err)
		}
		fmt.Printf("✅ Draft '%s' forgotten\n", args[0])
	},
}

func init() {
	forgetCmd.Flags().BoolVar(&forgetAll, "all", false, "Forget every pending draft")
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(forgetCmd)
}
