package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerivePath(t *testing.T) {
	tests := []struct {
		name    string
		iocName string
		baseDir string
		tag     string
		want    string
	}{
		{
			name:    "common IOC",
			iocName: "ioc-common-gigECam",
			baseDir: "/x/ioc",
			tag:     "R1.0.0",
			want:    "/x/ioc/common/gigECam/R1.0.0",
		},
		{
			name:    "multi-segment remainder keeps hyphens",
			iocName: "ioc-tmo-las-vac-01",
			baseDir: "/cds/group/pcds/epics/ioc",
			tag:     "v2.0.1",
			want:    "/cds/group/pcds/epics/ioc/tmo/las-vac-01/v2.0.1",
		},
		{
			name:    "expanded short name",
			iocName: "ioc-common-ads-ioc",
			baseDir: "/x/ioc",
			tag:     "1.0.0",
			want:    "/x/ioc/common/ads-ioc/1.0.0",
		},
		{
			name:    "trailing slash on base",
			iocName: "ioc-foo-bar",
			baseDir: "/x/ioc/",
			tag:     "R1.0.0",
			want:    "/x/ioc/foo/bar/R1.0.0",
		},
		{
			name:    "relative base",
			iocName: "ioc-foo-bar",
			baseDir: "ioc",
			tag:     "R1.0.0",
			want:    "ioc/foo/bar/R1.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DerivePath(tt.iocName, tt.baseDir, tt.tag)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, DerivePath(tt.iocName, tt.baseDir, tt.tag))
		})
	}
}
