package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInfo_Write(t *testing.T) {
	t.Parallel()

	b := buildInfo{version: "v1.4.0", commit: "3f2c1ab", date: "2026-10-19T08:00:00Z", goVer: "go1.25.9"}

	tests := []struct {
		name  string
		short bool
		want  string
	}{
		{
			name:  "short",
			short: true,
			want:  "v1.4.0\n",
		},
		{
			name: "full",
			want: "awb-tracker v1.4.0\n" +
				"  commit: 3f2c1ab\n" +
				"  built:  2026-10-19T08:00:00Z\n" +
				"  go:     go1.25.9\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			require.NoError(t, b.write(&out, tt.short))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestCurrentBuild_NeverEmpty(t *testing.T) {
	t.Parallel()

	b := currentBuild()
	assert.Equal(t, Version, b.version)
	assert.NotEmpty(t, b.commit)
	assert.NotEmpty(t, b.date)
	assert.NotEmpty(t, b.goVer)
}
