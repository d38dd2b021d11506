package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start NAME",
	Short: "Start a stopped pod",
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
			fatal("pod \"%s\" not found", name)
		}
		if pod.Status != "stopped" {
			fatal("pod %s has already been started", name)
		}
		if err := c.PodCommand(pod.ID, "start"); err != nil {
			fatal("%v", err)
		}
		fmt.Printf("✅ Pod '%s' started\n", name)

		// The IP is assigned asynchronously; converge the exemption rule
		// once the pod is actually up.
		scheduleReconcile(name)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop NAME",
	Short: "Stop a running pod",
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
			fatal("pod \"%s\" not found", name)
		}
		if pod.Status != "running" && pod.Status != "pending" {
			fatal("pod %s has already been stopped", name)
		}
		if err := c.PodCommand(pod.ID, "stop"); err != nil {
			fatal("%v", err)
		}
		fmt.Printf("✅ Pod '%s' stopped\n", name)
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
}
