package testimage

import (
	"slices"
	"strings"

	"github.com/bitbakery/devtool/pkg/bitbake"
	"github.com/bitbakery/devtool/pkg/logging"
)

// PtestSuffix is appended to a package name to form its self-test
// variant package name
const PtestSuffix = "-ptest"

// CollectInstallPackages resolves each requested package against the
// metadata session and returns the list of packages to install into the
// image. Input order is preserved, with each package immediately
// followed by its ptest variant when the recipe produces one.
//
// Resolution is fail-fast: the first package that cannot be resolved
// aborts the whole operation and no partial list is returned. A missing
// ptest variant is not an error.
func CollectInstallPackages(tf bitbake.Tinfoil, packageNames []string) ([]string, error) {
	logger := logging.GetLogger("testimage.resolve")

	install := make([]string, 0, len(packageNames)*2)
	for _, pn := range packageNames {
		rd, err := tf.ParseRecipe(pn)
		if err != nil {
			return nil, err
		}

		install = append(install, pn)

		packages := strings.Fields(rd.GetVar("PACKAGES"))
		ptestPkg := pn + PtestSuffix
		if slices.Contains(packages, ptestPkg) {
			install = append(install, ptestPkg)
			logger.Info().Str("package", ptestPkg).Msg("Including ptest package")
		} else {
			logger.Debug().Str("package", pn).Msg("No ptest package found")
		}
	}

	return install, nil
}

// SplitPackageArgument splits a comma-separated package argument into
// trimmed, non-blank package names
func SplitPackageArgument(arg string) []string {
	var names []string
	for _, part := range strings.Split(arg, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
