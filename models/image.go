// models/image.go
package models

// ImageMetadata is what the API reports for a freshly pulled image: the
// mount paths and ports its Dockerfile exposes. It seeds a new container.
type ImageMetadata struct {
	VolumeMounts []string    `json:"volumeMounts"`
	Ports        []ImagePort `json:"ports"`
}

type ImagePort struct {
	Number   int    `json:"number"`
	Protocol string `json:"protocol"`
}
