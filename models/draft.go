// models/draft.go
package models

// PodDraft is the locally persisted, not-yet-submitted pod specification.
// One draft per name lives on disk until "kcli save" submits it.
type PodDraft struct {
	Name          string          `json:"name"`
	Containers    []ContainerSpec `json:"containers"`
	Volumes       []Volume        `json:"volumes"`
	Replicas      int             `json:"replicas,omitempty"`
	KubeType      string          `json:"kube_type,omitempty"` // symbolic until finalized
	RestartPolicy string          `json:"restartPolicy,omitempty"`
	PublicIP      string          `json:"public_ip,omitempty"`
	Service       string          `json:"service,omitempty"`
}

type ContainerSpec struct {
	Image        string        `json:"image"` // identity key within a draft
	Name         string        `json:"name"`  // generated once, stable afterwards
	Kubes        int           `json:"kubes,omitempty"`
	Ports        []PortSpec    `json:"ports,omitempty"`
	Env          []EnvVar      `json:"env,omitempty"`
	VolumeMounts []VolumeMount `json:"volumeMounts"`
}

type PortSpec struct {
	IsPublic      bool   `json:"isPublic"`
	ContainerPort int    `json:"containerPort"`
	HostPort      int    `json:"hostPort"`
	Protocol      string `json:"protocol"` // "tcp" or "udp"
}

type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// VolumeMount with an empty Name is dangling and is dropped at finalization.
type VolumeMount struct {
	MountPath string `json:"mountPath"`
	Name      string `json:"name,omitempty"`
}

type Volume struct {
	Name           string          `json:"name"`
	PersistentDisk *PersistentDisk `json:"persistentDisk,omitempty"`
}

type PersistentDisk struct {
	PDName string `json:"pdName"`
	PDSize int    `json:"pdSize,omitempty"`
}

// Container returns the draft's container with the given image, if any.
func (d *PodDraft) Container(image string) (*ContainerSpec, bool) {
	for i := range d.Containers {
		if d.Containers[i].Image == image {
			return &d.Containers[i], true
		}
	}
	return nil, false
}

// Volume returns the draft's volume with the given name, if any.
func (d *PodDraft) Volume(name string) (*Volume, bool) {
	for i := range d.Volumes {
		if d.Volumes[i].Name == name {
			return &d.Volumes[i], true
		}
	}
	return nil, false
}
