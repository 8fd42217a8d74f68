package devtool

import (
	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bitbakery/devtool/pkg/bitbake"
	"github.com/bitbakery/devtool/pkg/config"
	"github.com/bitbakery/devtool/pkg/errors"
	"github.com/bitbakery/devtool/pkg/paths"
	"github.com/bitbakery/devtool/pkg/testimage"
)

func newTestImageCmd() *cobra.Command {
	var (
		packages  string
		workspace string
	)

	cmd := &cobra.Command{
		Use:     "test-image <imagename>",
		Short:   MsgTestImageShort,
		Long:    MsgTestImageLong,
		Example: MsgTestImageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imageName := ""
			if len(args) > 0 {
				imageName = args[0]
			}
			return runTestImage(imageName, packages, workspace)
		},
	}

	cmd.Flags().StringVarP(&packages, "package", "p", "", MsgFlagPackage)
	cmd.Flags().StringVar(&workspace, "workspace", "", MsgFlagWorkspace)
	cmd.Flags().SetNormalizeFunc(normalizePackageFlag)

	return cmd
}

// normalizePackageFlag accepts --packages as an alias for --package
func normalizePackageFlag(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "packages" {
		name = "package"
	}
	return pflag.NormalizedName(name)
}

func runTestImage(imageName, packages, workspace string) error {
	p, err := paths.New(workspace)
	if err != nil {
		return err
	}

	cfg, err := config.Load(p.ConfigFilePath())
	if err != nil {
		return err
	}

	fs := afero.NewOsFs()
	result, err := testimage.Run(testimage.RunOptions{
		ImageName: imageName,
		Packages:  packages,
		LogDir:    p.TestImageLogDir(),
		Task:      cfg.TestImage.Task,
		OpenTinfoil: func() (bitbake.Tinfoil, error) {
			return bitbake.NewTinfoil(cfg, p.BuildDir()), nil
		},
		Invoker: bitbake.NewInvoker(cfg, p.AppendsDir(), p.BuildDir(), fs),
		Fs:      fs,
	})
	if err != nil {
		return err
	}

	if result.Code != 0 {
		return errors.Newf(errors.ErrBuildFailed,
			"testimage task failed with exit status %d", result.Code).
			WithDetail("exitCode", result.Code)
	}

	pterm.Success.Printfln(MsgTestImageDone, result.LogDir)
	return nil
}
