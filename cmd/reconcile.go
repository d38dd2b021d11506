package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kuberdock/kcli/egress"
)

var reconcileUID string

// reconcileCmd is the re-invokable entry point host schedulers call a fixed
// delay after save/delete/start. It takes only the pod name and owner uid
// and converges against whatever is true right now.
var reconcileCmd = &cobra.Command{
	Use:    "reconcile NAME",
	Short:  "Converge host egress rules for a pod's owner",
	Hidden: true,
	Args:   cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if os.Geteuid() != 0 {
			fatal("reconcile expects superuser privileges")
		}
		if reconcileUID == "" {
			fatal("owner uid is expected")
		}

		log := logrus.New()
		cfg := loadConfig()
		r := egress.NewReconciler(newClient(cfg), egress.NewIPTables(), log)
		if err := r.Reconcile(args[0], reconcileUID); err != nil {
			log.Errorf("reconciliation for %q failed: %v", args[0], err)
			os.Exit(1)
		}
	},
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileUID, "uid", "", "Owner uid the rules belong to")
	rootCmd.AddCommand(reconcileCmd)
}
