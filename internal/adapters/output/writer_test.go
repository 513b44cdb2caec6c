package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteVersion(t *testing.T) {
	tests := []struct {
		name       string
		version    string
		wantOutput string
	}{
		{
			name:       "release tag",
			version:    "R7.2.0",
			wantOutput: "R7.2.0\n",
		},
		{
			name:       "describe output past a tag",
			version:    "R7.2.0-3-gabc1234",
			wantOutput: "R7.2.0-3-gabc1234\n",
		},
		{
			name:       "unknown development build",
			version:    "unknown.dev",
			wantOutput: "unknown.dev\n",
		},
		{
			name:       "empty version",
			version:    "",
			wantOutput: "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			var buf bytes.Buffer
			writer := NewWriterWithOutput(&buf)

			// Act
			err := writer.WriteVersion(tt.version)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutput, buf.String())
		})
	}
}

func TestNewWriter_UsesStdout(t *testing.T) {
	writer := NewWriter()
	assert.NotNil(t, writer)
	assert.NotNil(t, writer.out)
}
