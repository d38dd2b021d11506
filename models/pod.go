// models/pod.go
package models

// Pod is the remote API's view of a submitted pod. Only the fields the CLI
// reads are declared; everything else stays server-side.
type Pod struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Status   string            `json:"status"` // pending, running, stopped
	PodIP    string            `json:"podIP,omitempty"`
	Host     string            `json:"host,omitempty"`
	Labels   map[string]string `json:"labels,omitempty"`
	Template int               `json:"template_id,omitempty"`

	Containers []ContainerSpec `json:"containers,omitempty"`
}

// ActiveIPs collects the assigned IPs of the given pods, skipping pods that
// have not been scheduled yet.
func ActiveIPs(pods []Pod) []string {
	ips := []string{}
	for _, p := range pods {
		if p.PodIP != "" {
			ips = append(ips, p.PodIP)
		}
	}
	return ips
}
