// draft/merge.go
package draft

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/kuberdock/kcli/models"
)

var errSpecifyImage = errors.New("you must specify an image with option '-C|--container'")

// MetadataSource supplies pulled image metadata used to seed new containers.
type MetadataSource interface {
	ImageMetadata(image string) (*models.ImageMetadata, error)
}

// DriveSource supplies the user's persistent drive listing.
type DriveSource interface {
	ListDrives() ([]models.Drive, error)
}

// Intent captures everything one CLI invocation wants to change on a draft.
// Optional scalars are pointers so "not given" and "given empty" differ.
type Intent struct {
	Image           string // container selector; creates the container if new
	Kubes           int    // resource units for the selected container, 0 = keep
	Ports           string // raw port spec list, replaces existing ports
	Env             string // raw "NAME:value,..." list to add or update
	DeleteEnv       string // comma-separated env names to remove
	DeleteContainer string // image whose container is removed from the draft

	PersistentDrive string // drive name to bind at MountPath
	MountPath       string
	Size            int // implies intent to create the drive when it is missing

	Replicas      *int
	KubeType      *string
	RestartPolicy *string
	PublicIP      *string
	Service       *string
}

var mountPathPattern = regexp.MustCompile(`^[\w/.-]*$`)

// Apply merges one invocation's intent onto the draft. It is the only way
// drafts change; the function mutates d in place and reports the first
// validation failure without partially applying later steps.
func Apply(d *models.PodDraft, in Intent, meta MetadataSource, drives DriveSource) error {
	if in.DeleteContainer != "" {
		kept := d.Containers[:0]
		for _, c := range d.Containers {
			if c.Image != in.DeleteContainer {
				kept = append(kept, c)
			}
		}
		d.Containers = kept
	}

	var selected *models.ContainerSpec
	if in.Image != "" {
		selected = selectOrCreate(d, in.Image, meta)
		if in.Kubes > 0 {
			selected.Kubes = in.Kubes
		}
	}

	if in.Ports != "" {
		if selected == nil {
			return errSpecifyImage
		}
		ports, err := ParsePorts(in.Ports)
		if err != nil {
			return err
		}
		selected.Ports = ports
	}

	if in.Env != "" {
		if selected == nil {
			return errSpecifyImage
		}
		addOrUpdateEnv(selected, in.Env)
	}
	if in.DeleteEnv != "" {
		if selected == nil {
			return errSpecifyImage
		}
		deleteEnv(selected, in.DeleteEnv)
	}

	if in.PersistentDrive != "" {
		if selected == nil {
			return errSpecifyImage
		}
		if err := bindDrive(d, selected, in, drives); err != nil {
			return err
		}
	}

	if in.Replicas != nil {
		d.Replicas = *in.Replicas
	}
	if in.KubeType != nil {
		d.KubeType = *in.KubeType
	}
	if in.RestartPolicy != nil {
		d.RestartPolicy = *in.RestartPolicy
	}
	if in.PublicIP != nil {
		d.PublicIP = *in.PublicIP
	}
	if in.Service != nil {
		d.Service = *in.Service
	}
	return nil
}

// selectOrCreate returns the container for the image, creating and seeding
// it from pulled image metadata when the draft has no such container yet.
// A metadata fetch failure degrades to an empty seed.
func selectOrCreate(d *models.PodDraft, image string, meta MetadataSource) *models.ContainerSpec {
	if c, ok := d.Container(image); ok {
		return c
	}

	c := models.ContainerSpec{
		Image:        image,
		Name:         GenerateName(image),
		VolumeMounts: []models.VolumeMount{},
	}
	if meta != nil {
		if pulled, err := meta.ImageMetadata(image); err == nil && pulled != nil {
			for _, path := range pulled.VolumeMounts {
				c.VolumeMounts = append(c.VolumeMounts, models.VolumeMount{MountPath: path})
			}
			for _, p := range pulled.Ports {
				protocol := p.Protocol
				if protocol == "" {
					protocol = "tcp"
				}
				c.Ports = append(c.Ports, models.PortSpec{
					IsPublic:      false,
					ContainerPort: p.Number,
					HostPort:      p.Number,
					Protocol:      protocol,
				})
			}
		}
	}
	d.Containers = append(d.Containers, c)
	return &d.Containers[len(d.Containers)-1]
}

// addOrUpdateEnv applies a "NAME:value,..." list: matching names are updated
// in place, unseen names appended once in first-seen order. Malformed tokens
// (not exactly one colon) are skipped silently.
func addOrUpdateEnv(c *models.ContainerSpec, raw string) {
	appended := map[string]bool{}
	for _, token := range strings.Split(strings.TrimSpace(raw), ",") {
		parts := strings.Split(strings.TrimSpace(token), ":")
		if len(parts) != 2 {
			continue
		}
		name, value := parts[0], parts[1]

		updated := false
		for i := range c.Env {
			if c.Env[i].Name == name {
				c.Env[i].Value = value
				updated = true
				break
			}
		}
		if !updated && !appended[name] {
			c.Env = append(c.Env, models.EnvVar{Name: name, Value: value})
			appended[name] = true
		}
	}
}

// deleteEnv removes entries whose name is in the comma-separated set.
func deleteEnv(c *models.ContainerSpec, raw string) {
	doomed := map[string]bool{}
	for _, name := range strings.Split(raw, ",") {
		doomed[name] = true
	}
	kept := c.Env[:0]
	for _, e := range c.Env {
		if !doomed[e.Name] {
			kept = append(kept, e)
		}
	}
	c.Env = kept
}

// bindDrive resolves a named persistent drive against a mount path on the
// selected container, reusing an existing mount for the path or creating
// one, and creating or updating the matching volume entry.
func bindDrive(d *models.PodDraft, c *models.ContainerSpec, in Intent, drives DriveSource) error {
	switch {
	case in.MountPath == "":
		return fmt.Errorf(`"--mount-path" option is expected`)
	case !mountPathPattern.MatchString(in.MountPath):
		return fmt.Errorf(`"--mount-path" should contain letters of Latin alphabet or "/", "_", "-" symbols`)
	case len(in.MountPath) > 30:
		return fmt.Errorf(`"--mount-path" maximum length is 30 symbols`)
	}

	found := false
	if drives != nil {
		list, err := drives.ListDrives()
		if err != nil {
			return fmt.Errorf("failed to list persistent drives: %w", err)
		}
		for _, drive := range list {
			if drive.Name == in.PersistentDrive {
				found = true
				break
			}
		}
	}
	if !found && in.Size == 0 {
		return fmt.Errorf(`drive not found. To set a new drive option "--size" is expected`)
	}

	var mount *models.VolumeMount
	for i := range c.VolumeMounts {
		if c.VolumeMounts[i].MountPath == in.MountPath {
			mount = &c.VolumeMounts[i]
			break
		}
	}
	if mount == nil {
		c.VolumeMounts = append(c.VolumeMounts, models.VolumeMount{MountPath: in.MountPath})
		mount = &c.VolumeMounts[len(c.VolumeMounts)-1]
	}
	if mount.Name == "" {
		mount.Name = volumeName(in.MountPath)
	}

	vol, ok := d.Volume(mount.Name)
	if !ok {
		d.Volumes = append(d.Volumes, models.Volume{Name: mount.Name})
		vol = &d.Volumes[len(d.Volumes)-1]
	}
	vol.PersistentDisk = &models.PersistentDisk{
		PDName: in.PersistentDrive,
		PDSize: in.Size,
	}
	return nil
}
