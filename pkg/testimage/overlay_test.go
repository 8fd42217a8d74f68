package testimage_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitbakery/devtool/pkg/bitbake"
	"github.com/bitbakery/devtool/pkg/testimage"
)

func TestBuildOverlayOrderAndContent(t *testing.T) {
	overlay := testimage.BuildOverlay("/work/testimage-logs", []string{"bash", "bash-ptest"})

	want := []string{
		`TEST_LOG_DIR = "/work/testimage-logs"`,
		`TESTIMAGE_UPDATE_VARS:append = " TEST_LOG_DIR IMAGE_CLASSES TEST_SUITES DISTRO_FEATURES"`,
		`IMAGE_CLASSES += " testimage"`,
		`do_testimage[depends] += " ${PN}:do_image_complete"`,
		`TEST_SUITES = "ping ssh ptest"`,
		`DISTRO_FEATURES:append = " ptest"`,
		`TEST_RUNQEMUPARAMS = "slirp"`,
		`IMAGE_FSTYPES:append = " ext4"`,
		`QB_DEFAULT_FSTYPE = "ext4"`,
		`IMAGE_INSTALL:append = " bash bash-ptest"`,
	}

	require.Len(t, overlay, len(want))
	for i, stmt := range overlay {
		assert.Equal(t, want[i], stmt.Render(), "statement %d", i)
	}
}

func TestBuildOverlayInstallListDedupedAndSorted(t *testing.T) {
	overlay := testimage.BuildOverlay("/logs", []string{"zlib", "bash", "bash", "bash-ptest", "zlib"})

	install := findStatement(t, overlay, "IMAGE_INSTALL:append")
	assert.Equal(t, " bash bash-ptest zlib", install.Value)
}

func TestBuildOverlayExactlyOneDependsEdge(t *testing.T) {
	tests := []struct {
		name    string
		install []string
	}{
		{name: "single_package", install: []string{"bash"}},
		{name: "many_packages", install: []string{"bash", "zlib", "dropbear", "busybox"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overlay := testimage.BuildOverlay("/logs", tt.install)

			count := 0
			for _, stmt := range overlay {
				if stmt.Key == "do_testimage[depends]" {
					count++
				}
			}
			assert.Equal(t, 1, count)
		})
	}
}

func TestBuildOverlayRetriggersOnUpdateVars(t *testing.T) {
	overlay := testimage.BuildOverlay("/logs", []string{"bash"})

	update := findStatement(t, overlay, "TESTIMAGE_UPDATE_VARS:append")
	for _, v := range []string{"TEST_LOG_DIR", "IMAGE_CLASSES", "TEST_SUITES", "DISTRO_FEATURES"} {
		assert.True(t, strings.Contains(update.Value, v), "update vars should include %s", v)
	}
}

func findStatement(t *testing.T, overlay []bitbake.Statement, key string) bitbake.Statement {
	t.Helper()
	for _, stmt := range overlay {
		if stmt.Key == key {
			return stmt
		}
	}
	t.Fatalf("no statement with key %s", key)
	return bitbake.Statement{}
}
