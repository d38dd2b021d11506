// draft/finalize.go
package draft

import (
	"errors"

	"github.com/kuberdock/kcli/models"
)

var ErrInvalidKubeType = errors.New("valid kube type must be set. " +
	"Run 'kcli kube-types' to get available kube types")

// Submission is the document posted to the pod API: the draft narrowed to
// the fields the server recognizes, with the kube type translated to its
// numeric id.
type Submission struct {
	Name          string                 `json:"name"`
	Containers    []models.ContainerSpec `json:"containers"`
	Volumes       []models.Volume        `json:"volumes"`
	Service       string                 `json:"service,omitempty"`
	Replicas      int                    `json:"replicas,omitempty"`
	KubeType      int                    `json:"kube_type"`
	RestartPolicy string                 `json:"restartPolicy,omitempty"`
	PublicIP      string                 `json:"public_ip,omitempty"`
}

// Finalize produces the submission document. Volume mounts that never got a
// backing volume (no name) or lost their path are dropped; a kube type with
// no entry in the symbolic-to-id table is a hard error.
func Finalize(d *models.PodDraft, kubeTypes map[string]int) (*Submission, error) {
	kubeType, ok := kubeTypes[d.KubeType]
	if !ok {
		return nil, ErrInvalidKubeType
	}

	containers := make([]models.ContainerSpec, len(d.Containers))
	for i, c := range d.Containers {
		mounts := []models.VolumeMount{}
		for _, m := range c.VolumeMounts {
			if m.MountPath != "" && m.Name != "" {
				mounts = append(mounts, m)
			}
		}
		c.VolumeMounts = mounts
		containers[i] = c
	}

	volumes := d.Volumes
	if volumes == nil {
		volumes = []models.Volume{}
	}

	return &Submission{
		Name:          d.Name,
		Containers:    containers,
		Volumes:       volumes,
		Service:       d.Service,
		Replicas:      d.Replicas,
		KubeType:      kubeType,
		RestartPolicy: d.RestartPolicy,
		PublicIP:      d.PublicIP,
	}, nil
}
