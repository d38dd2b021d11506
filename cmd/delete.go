package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a pod on the KuberDock server",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		cfg := loadConfig()
		c := newClient(cfg)

		pod, found, err := c.FindPod(name)
		if err != nil {
			fatal("%v", err)
		}
		if !found {
			fatal("no such item")
		}
		if err := c.DeletePod(pod.ID); err != nil {
			fatal("%v", err)
		}
		fmt.Printf("✅ Pod '%s' deleted\n", name)

		// The pod's IP frees up some time after the API call returns; the
		// deferred run removes the now-stale exemption rule.
		scheduleReconcile(name)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
