package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kuberdock/kcli/config"
	"github.com/kuberdock/kcli/draft"
	"github.com/kuberdock/kcli/models"
)

// Draft mutation flags, shared by create and set.
var (
	containerImage string
	kubesCount     int
	portsFlag      string
	envFlag        string
	deleteEnvFlag  string
	deleteImage    string
	pdName         string
	mountPathFlag  string
	sizeFlag       int
	kubeTypeFlag   string
	replicasFlag   int
	restartPolicy  string
	publicIPFlag   string
	serviceFlag    string
	listEnvFlag    bool
)

var createCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create (or reset) a local pod draft and apply configuration flags",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		cfg := loadConfig()
		st := newStore(cfg)

		d, ok := st.Load(name)
		if !ok {
			d = &models.PodDraft{
				Name:       name,
				Containers: []models.ContainerSpec{},
				Volumes:    []models.Volume{},
			}
		}
		applyDraftFlags(cmd, cfg, d)
		if listEnvFlag {
			printEnv(d)
			return
		}
		if err := st.Save(d); err != nil {
			fatal("%v", err)
		}
		fmt.Printf("✅ Draft '%s' updated\n", name)
	},
}

var setCmd = &cobra.Command{
	Use:   "set NAME",
	Short: "Apply configuration flags to an existing pod draft",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		cfg := loadConfig()
		st := newStore(cfg)

		d, ok := st.Load(name)
		if !ok {
			fatal("use create command before setup pod")
		}
		applyDraftFlags(cmd, cfg, d)
		if listEnvFlag {
			printEnv(d)
			return
		}
		if err := st.Save(d); err != nil {
			fatal("%v", err)
		}
		fmt.Printf("✅ Draft '%s' updated\n", name)
	},
}

// applyDraftFlags turns this invocation's flags into one mutation intent and
// merges it onto the draft. The remote client doubles as the image metadata
// and drive collaborators.
func applyDraftFlags(cmd *cobra.Command, cfg *config.Config, d *models.PodDraft) {
	intent := draft.Intent{
		Image:           containerImage,
		Ports:           portsFlag,
		Env:             envFlag,
		DeleteEnv:       deleteEnvFlag,
		DeleteContainer: deleteImage,
		PersistentDrive: pdName,
		MountPath:       mountPathFlag,
		Size:            sizeFlag,
	}
	if cmd.Flags().Changed("kubes") {
		intent.Kubes = kubesCount
	}
	if cmd.Flags().Changed("replicas") {
		intent.Replicas = &replicasFlag
	}
	if cmd.Flags().Changed("kube-type") {
		intent.KubeType = &kubeTypeFlag
	}
	if cmd.Flags().Changed("restart-policy") {
		intent.RestartPolicy = &restartPolicy
	}
	if cmd.Flags().Changed("public-ip") {
		intent.PublicIP = &publicIPFlag
	}
	if cmd.Flags().Changed("service") {
		intent.Service = &serviceFlag
	}

	c := newClient(cfg)
	if err := draft.Apply(d, intent, c, c); err != nil {
		fatal("%v", err)
	}
}

func printEnv(d *models.PodDraft) {
	if containerImage == "" {
		fatal("to show envvars image is expected")
	}
	c, ok := d.Container(containerImage)
	if !ok {
		fatal("no such item")
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVALUE")
	for _, e := range c.Env {
		fmt.Fprintf(w, "%s\t%s\n", e.Name, e.Value)
	}
	w.Flush()
}

func addDraftFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&containerImage, "container", "C", "", "Image of the container to select or create")
	cmd.Flags().IntVar(&kubesCount, "kubes", 1, "Resource units for the selected container")
	cmd.Flags().StringVarP(&portsFlag, "ports", "p", "", "Port specs, e.g. +80:8080:tcp,53::udp")
	cmd.Flags().StringVar(&envFlag, "env", "", "Environment variables to add or update, NAME:value,...")
	cmd.Flags().StringVar(&deleteEnvFlag, "delete-env", "", "Environment variable names to remove, comma-separated")
	cmd.Flags().StringVar(&deleteImage, "delete", "", "Remove the container with this image from the draft")
	cmd.Flags().StringVar(&pdName, "persistent-drive", "", "Persistent drive to bind at --mount-path")
	cmd.Flags().StringVar(&mountPathFlag, "mount-path", "", "Mount path for --persistent-drive")
	cmd.Flags().IntVar(&sizeFlag, "size", 0, "Size (GB) for a drive that does not exist yet")
	cmd.Flags().StringVar(&kubeTypeFlag, "kube-type", "", "Symbolic kube type name")
	cmd.Flags().IntVar(&replicasFlag, "replicas", 0, "Replica count")
	cmd.Flags().StringVar(&restartPolicy, "restart-policy", "", "Pod restart policy")
	cmd.Flags().StringVar(&publicIPFlag, "public-ip", "", "Public IP to request")
	cmd.Flags().StringVar(&serviceFlag, "service", "", "Service annotation")
	cmd.Flags().BoolVar(&listEnvFlag, "list-env", false, "List the selected container's environment variables")
}

func init() {
	addDraftFlags(createCmd)
	addDraftFlags(setCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(setCmd)
}
