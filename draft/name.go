// draft/name.go
package draft

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// nameSuffix returns ten random digits derived from a fresh UUID.
func nameSuffix() string {
	u := uuid.New()
	return fmt.Sprintf("%010d", binary.BigEndian.Uint64(u[:8])%10000000000)
}

// GenerateName builds a stable name from the trailing path segment of an
// image reference ("fedora/apache" -> "apache<digits>").
func GenerateName(image string) string {
	if idx := strings.Index(image, "/"); idx >= 0 {
		image = image[idx+1:]
	}
	return image + nameSuffix()
}

// volumeName derives a volume name from a mount path:
// "/var/lib" -> "var-lib<digits>".
func volumeName(mountPath string) string {
	sanitized := strings.ToLower(strings.ReplaceAll(strings.TrimLeft(mountPath, "/"), "/", "-"))
	return sanitized + nameSuffix()
}
