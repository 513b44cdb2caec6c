package usecases

import (
	"path/filepath"
	"strings"
)

// DerivePath returns the directory an IOC release is deployed in:
// <baseDir>/<category>/<rest of name>/<tag>.
//
// For example ("ioc-common-gigECam", "/cds/group/pcds/epics/ioc", "R1.0.0")
// gives /cds/group/pcds/epics/ioc/common/gigECam/R1.0.0.
//
// name must be well-formed; see domain.IsWellFormedName.
func DerivePath(name, baseDir, tag string) string {
	parts := strings.Split(name, "-")
	return filepath.Join(baseDir, parts[1], strings.Join(parts[2:], "-"), tag)
}
