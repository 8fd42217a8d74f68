package bitbake_test

import (
	"testing"

	"github.com/bitbakery/devtool/pkg/bitbake"
	"github.com/stretchr/testify/assert"
)

func TestStatementRender(t *testing.T) {
	tests := []struct {
		name string
		stmt bitbake.Statement
		want string
	}{
		{
			name: "plain_set",
			stmt: bitbake.Set("TEST_LOG_DIR", "/work/testimage-logs"),
			want: `TEST_LOG_DIR = "/work/testimage-logs"`,
		},
		{
			name: "append",
			stmt: bitbake.Append("IMAGE_CLASSES", " testimage"),
			want: `IMAGE_CLASSES += " testimage"`,
		},
		{
			name: "override_suffix",
			stmt: bitbake.Append("DISTRO_FEATURES:append", " ptest"),
			want: `DISTRO_FEATURES:append += " ptest"`,
		},
		{
			name: "varflag",
			stmt: bitbake.Append("do_testimage[depends]", " ${PN}:do_image_complete"),
			want: `do_testimage[depends] += " ${PN}:do_image_complete"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stmt.Render())
		})
	}
}

func TestRenderAll(t *testing.T) {
	statements := []bitbake.Statement{
		bitbake.Set("TEST_SUITES", "ping ssh ptest"),
		bitbake.Set("TEST_RUNQEMUPARAMS", "slirp"),
	}

	want := "TEST_SUITES = \"ping ssh ptest\"\nTEST_RUNQEMUPARAMS = \"slirp\"\n"
	assert.Equal(t, want, bitbake.RenderAll(statements))
}

func TestRenderAllEmpty(t *testing.T) {
	assert.Equal(t, "", bitbake.RenderAll(nil))
}

func TestVarMap(t *testing.T) {
	record := bitbake.VarMap{"PACKAGES": "bash bash-ptest bash-doc"}

	assert.Equal(t, "bash bash-ptest bash-doc", record.GetVar("PACKAGES"))
	assert.Equal(t, "", record.GetVar("MISSING"))
	assert.Equal(t, "fallback", record.GetVarDefault("MISSING", "fallback"))
	assert.Equal(t, "bash bash-ptest bash-doc", record.GetVarDefault("PACKAGES", "fallback"))
}
