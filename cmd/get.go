package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kuberdock/kcli/models"
)

var getCmd = &cobra.Command{
	Use:   "get [NAME]",
	Short: "Get the user's pods from the KuberDock server",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		c := newClient(cfg)

		pods, err := c.ListPods()
		if err != nil {
			fatal("%v", err)
		}
		if len(args) == 1 {
			name := args[0]
			filtered := []models.Pod{}
			for _, p := range pods {
				if p.Name == name {
					filtered = append(filtered, p)
				}
			}
			if len(filtered) == 0 {
				fatal("pod \"%s\" not found", name)
			}
			pods = filtered
		}

		if len(pods) == 0 {
			fmt.Println("No pods found.")
			return
		}

		// Columnar output like kubectl's get.
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tIMAGES\tSTATUS\tIP\tHOST")
		for _, pod := range pods {
			images := []string{}
			for _, c := range pod.Containers {
				if c.Image == "" {
					images = append(images, "imageless")
					continue
				}
				images = append(images, c.Image)
			}
			ip := pod.PodIP
			if ip == "" {
				ip = "-"
			}
			host := pod.Host
			if host == "" {
				host = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				pod.Name,
				strings.Join(images, ","),
				pod.Status,
				ip,
				host,
			)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
