package testimage

import (
	"sort"
	"strings"

	"github.com/bitbakery/devtool/pkg/bitbake"
)

// Fixed testimage settings. The test runner boots the image under QEMU
// with slirp networking (no privileged network setup) and requires an
// ext4 rootfs, and the suite baseline checks connectivity, ssh, and the
// installed packages' own ptest suites.
const (
	testSuites      = "ping ssh ptest"
	qemuNetworkMode = "slirp"
	rootfsType      = "ext4"
)

// updateVars are appended to TESTIMAGE_UPDATE_VARS so that re-running
// with different packages or suites is detected as a change instead of
// being served from stale results
const updateVars = "TEST_LOG_DIR IMAGE_CLASSES TEST_SUITES DISTRO_FEATURES"

// BuildOverlay assembles the metadata overlay forcing the install list
// into the image and configuring the testimage run. The statement order
// is fixed; the build system does not care, but a stable overlay keeps
// generated appends diffable.
func BuildOverlay(logDir string, install []string) []bitbake.Statement {
	return []bitbake.Statement{
		bitbake.Set("TEST_LOG_DIR", logDir),
		bitbake.Set("TESTIMAGE_UPDATE_VARS:append", " "+updateVars),
		bitbake.Append("IMAGE_CLASSES", " testimage"),
		// do_testimage reads the testdata.json manifest produced as a
		// side effect of the image build; without this edge it could
		// run against a stale or missing manifest.
		bitbake.Append("do_testimage[depends]", " ${PN}:do_image_complete"),
		bitbake.Set("TEST_SUITES", testSuites),
		bitbake.Set("DISTRO_FEATURES:append", " ptest"),
		bitbake.Set("TEST_RUNQEMUPARAMS", qemuNetworkMode),
		bitbake.Set("IMAGE_FSTYPES:append", " "+rootfsType),
		bitbake.Set("QB_DEFAULT_FSTYPE", rootfsType),
		bitbake.Set("IMAGE_INSTALL:append", " "+strings.Join(dedupeSorted(install), " ")),
	}
}

// dedupeSorted collapses duplicates and sorts lexicographically
func dedupeSorted(pkgs []string) []string {
	seen := make(map[string]struct{}, len(pkgs))
	unique := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	sort.Strings(unique)
	return unique
}
