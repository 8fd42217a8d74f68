// Package testimage implements the test-image workflow: resolve the
// requested packages (plus their ptest variants), synthesize a metadata
// overlay that forces them into the target image and configures the
// QEMU-based test run, and delegate the build and on-target test
// execution to the build-task invoker.
package testimage

import (
	"github.com/spf13/afero"

	"github.com/bitbakery/devtool/pkg/bitbake"
	"github.com/bitbakery/devtool/pkg/errors"
	"github.com/bitbakery/devtool/pkg/logging"
)

// DefaultTask is the BitBake task that runs the image test suite
const DefaultTask = "testimage"

// RunOptions holds everything a test-image run needs. Collaborators are
// injected so the workflow is testable without a build system present.
type RunOptions struct {
	// ImageName is the image recipe to build and test
	ImageName string

	// Packages is the raw comma-separated package argument
	Packages string

	// LogDir is the destination for on-target test logs, created if
	// missing
	LogDir string

	// Task overrides the test task name; empty means DefaultTask
	Task string

	// OpenTinfoil acquires the metadata session. It is only called
	// after input validation has passed.
	OpenTinfoil func() (bitbake.Tinfoil, error)

	// Invoker runs the delegated build/test task
	Invoker bitbake.Invoker

	// Fs is the filesystem used for log directory creation; nil means
	// the OS filesystem
	Fs afero.Fs
}

// Result reports the outcome of a test-image run
type Result struct {
	// Code is the build/test invoker's result code, propagated
	// unchanged (0 = success)
	Code int

	// InstallPackages is the resolved install list, in request order
	InstallPackages []string

	// LogDir is where the test runner wrote its logs
	LogDir string

	// OutputDir is the invoker's image output directory
	OutputDir string
}

// Run validates input, resolves packages, synthesizes the overlay, and
// dispatches the build/test invocation
func Run(opts RunOptions) (*Result, error) {
	logger := logging.GetLogger("testimage")

	if opts.ImageName == "" {
		return nil, errors.New(errors.ErrInvalidInput,
			"image recipe to test must be specified")
	}
	if opts.Packages == "" {
		return nil, errors.New(errors.ErrInvalidInput,
			"package(s) to install must be specified via -p/--package")
	}
	packageNames := SplitPackageArgument(opts.Packages)
	if len(packageNames) == 0 {
		return nil, errors.New(errors.ErrInvalidInput,
			"no valid package name(s) provided")
	}

	tf, err := opts.OpenTinfoil()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSessionStart,
			"failed to open metadata session")
	}
	installPkgs, err := resolveWithSession(tf, packageNames)
	if err != nil {
		return nil, err
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := fs.MkdirAll(opts.LogDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create test logs directory %s", opts.LogDir)
	}

	task := opts.Task
	if task == "" {
		task = DefaultTask
	}

	logger.Info().
		Str("image", opts.ImageName).
		Strs("packages", installPkgs).
		Msg("Building and testing image")

	code, outputDir, err := opts.Invoker.RunTask(bitbake.RunTaskOptions{
		Image:   opts.ImageName,
		Task:    task,
		Overlay: BuildOverlay(opts.LogDir, installPkgs),
	})
	if err != nil {
		return nil, err
	}

	if code == 0 {
		logger.Info().Str("logDir", opts.LogDir).Msg("Testimage completed")
	}

	return &Result{
		Code:            code,
		InstallPackages: installPkgs,
		LogDir:          opts.LogDir,
		OutputDir:       outputDir,
	}, nil
}

// resolveWithSession runs package resolution with the session released
// on every exit path
func resolveWithSession(tf bitbake.Tinfoil, packageNames []string) ([]string, error) {
	defer func() {
		if err := tf.Shutdown(); err != nil {
			logger := logging.GetLogger("testimage")
			logger.Warn().Err(err).
				Msg("Failed to shut down metadata session")
		}
	}()
	return CollectInstallPackages(tf, packageNames)
}
