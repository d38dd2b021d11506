package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kuberdock/kcli/draft"
	"github.com/kuberdock/kcli/egress"
)

var saveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Submit a pod draft to the KuberDock server",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		cfg := loadConfig()
		st := newStore(cfg)

		d, ok := st.Load(name)
		if !ok {
			fatal("pod data missing or contains garbage. Try running \"kcli forget %s\" then \"kcli create %s\" to recreate the pod", name, name)
		}

		c := newClient(cfg)
		kubeTypes, err := c.KubeTypes()
		if err != nil {
			fatal("%v", err)
		}
		submission, err := draft.Finalize(d, kubeTypes)
		if err != nil {
			fatal("%v", err)
		}
		if err := c.CreatePod(submission); err != nil {
			fatal("%v", err)
		}
		if err := st.Delete(name); err != nil {
			fmt.Printf("⚠️ Warning: %v\n", err)
		}
		fmt.Printf("✅ Pod '%s' submitted\n", name)

		scheduleReconcile(name)
	},
}

// scheduleReconcile queues the deferred egress reconciliation for the
// invoking user. The remote effect is not confirmed synchronously, so the
// rules converge a couple of minutes from now; failure to schedule is a
// warning, never a command failure.
func scheduleReconcile(name string) {
	uid := strconv.Itoa(os.Getuid())
	if err := egress.NewAtScheduler().ScheduleReconcile(name, uid); err != nil {
		fmt.Printf("⚠️ Warning: %v\n", err)
	}
}

func init() {
	rootCmd.AddCommand(saveCmd)
}
