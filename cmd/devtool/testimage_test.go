package devtool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitbakery/devtool/pkg/errors"
)

func TestTestImageFlagAlias(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "short_form", args: []string{"-p", "bash,zlib"}},
		{name: "long_form", args: []string{"--package", "bash,zlib"}},
		{name: "plural_alias", args: []string{"--packages", "bash,zlib"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newTestImageCmd()
			require.NoError(t, cmd.Flags().Parse(tt.args))

			flag := cmd.Flags().Lookup("package")
			require.NotNil(t, flag)
			assert.Equal(t, "bash,zlib", flag.Value.String())
		})
	}
}

func TestTestImageRequiresPackages(t *testing.T) {
	t.Setenv("DEVTOOL_WORKSPACE", t.TempDir())

	rootCmd := NewRootCmd()
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"test-image", "core-image-minimal"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "package(s) to install must be specified")
}

func TestTestImageRequiresImageName(t *testing.T) {
	t.Setenv("DEVTOOL_WORKSPACE", t.TempDir())

	rootCmd := NewRootCmd()
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"test-image", "-p", "bash"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "image recipe to test must be specified")
}
