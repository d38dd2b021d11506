package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kuberdock/kcli/client"
	"github.com/kuberdock/kcli/config"
	"github.com/kuberdock/kcli/store"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "kcli",
	Short: "kcli manages KuberDock pods from the command line",
	Long: "kcli assembles pod drafts locally across invocations, submits them " +
		"to a KuberDock server and keeps host egress rules in sync with the " +
		"pods that are actually alive.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the kcli config file")
}

// fatal prints one human-readable line and exits non-zero. Validation and
// remote failures all funnel through here; there is no exit-code taxonomy
// beyond success and failure.
func fatal(format string, args ...any) {
	fmt.Printf("❌ "+format+"\n", args...)
	os.Exit(1)
}

func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("%v", err)
	}
	return cfg
}

func newClient(cfg *config.Config) *client.Client {
	return client.NewClient(client.ClientConfig{
		URL:      cfg.URL,
		User:     cfg.User,
		Password: cfg.Password,
		Token:    cfg.Token,
	})
}

func newStore(cfg *config.Config) *store.Store {
	return store.New(cfg.DraftsDir())
}
