// draft/ports.go
package draft

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/kuberdock/kcli/models"
)

// Port spec tokens look like +1234:567:tcp
//
//	^ "+" marks the port public (optional)
//	   ^ container port
//	        ^ host port (optional, defaults to container port)
//	            ^ protocol, tcp or udp (optional, defaults to tcp)
var portPattern = regexp.MustCompile(`^(\+)?(\d+):?(\d+)?:?(tcp|udp)?$`)

const (
	minPort = 1
	maxPort = 1 << 16
)

var errPortFormat = errors.New("wrong port format. " +
	"Example: +453:54:udp where '+' is a public IP, " +
	"453 - container port, 54 - pod port, " +
	"'udp' - protocol (tcp or udp)")

// ParsePorts parses a comma-separated list of port spec tokens. Any bad
// token fails the whole list; nothing is partially applied.
func ParsePorts(spec string) ([]models.PortSpec, error) {
	ports := []models.PortSpec{}
	for _, token := range strings.Split(strings.TrimSpace(spec), ",") {
		m := portPattern.FindStringSubmatch(token)
		if m == nil {
			return nil, errPortFormat
		}

		containerPort, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, errPortFormat
		}
		hostPort := containerPort
		if m[3] != "" {
			if hostPort, err = strconv.Atoi(m[3]); err != nil {
				return nil, errPortFormat
			}
		}
		protocol := m[4]
		if protocol == "" {
			protocol = "tcp"
		}

		if containerPort < minPort || containerPort >= maxPort ||
			hostPort < minPort || hostPort >= maxPort {
			return nil, errPortFormat
		}

		ports = append(ports, models.PortSpec{
			IsPublic:      m[1] != "",
			ContainerPort: containerPort,
			HostPort:      hostPort,
			Protocol:      protocol,
		})
	}
	return ports, nil
}
