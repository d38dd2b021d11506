package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var drivesCmd = &cobra.Command{
	Use:   "drives",
	Short: "Manage persistent drives",
}

var drivesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the user's persistent drives",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		drives, err := newClient(cfg).ListDrives()
		if err != nil {
			fatal("%v", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSIZE\tIN USE")
		for _, d := range drives {
			fmt.Fprintf(w, "%s\t%s\t%d\t%t\n", d.ID, d.Name, d.Size, d.InUse)
		}
		w.Flush()
	},
}

var drivesAddCmd = &cobra.Command{
	Use:   "add NAME SIZE",
	Short: "Create a persistent drive",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		size, err := strconv.Atoi(args[1])
		if err != nil || size <= 0 {
			fatal("size must be a positive number, got %q", args[1])
		}
		cfg := loadConfig()
		if err := newClient(cfg).CreateDrive(name, size); err != nil {
			fatal("%v", err)
		}
		fmt.Printf("✅ Drive '%s' created\n", name)
	},
}

var drivesDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a persistent drive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		cfg := loadConfig()
		c := newClient(cfg)

		drives, err := c.ListDrives()
		if err != nil {
			fatal("%v", err)
		}
		for _, d := range drives {
			if d.Name == name {
				if err := c.DeleteDrive(d.ID); err != nil {
					fatal("%v", err)
				}
				fmt.Printf("✅ Drive '%s' deleted\n", name)
				return
			}
		}
		fatal("no such drive")
	},
}

func init() {
	drivesCmd.AddCommand(drivesListCmd)
	drivesCmd.AddCommand(drivesAddCmd)
	drivesCmd.AddCommand(drivesDeleteCmd)
	rootCmd.AddCommand(drivesCmd)
}
