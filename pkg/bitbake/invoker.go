package bitbake

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/bitbakery/devtool/pkg/config"
	"github.com/bitbakery/devtool/pkg/errors"
	"github.com/bitbakery/devtool/pkg/logging"
)

// appendHeader marks generated bbappend files so stale ones are easy to
// identify in the workspace
const appendHeader = "# Generated by devtool test-image; do not edit\n"

// RunTaskOptions describes one delegated build/test invocation
type RunTaskOptions struct {
	// Image is the image recipe to build
	Image string

	// Task is the BitBake task to run (without the do_ prefix)
	Task string

	// ExtraPackages are appended to the image's IMAGE_INSTALL in
	// addition to whatever the overlay already sets
	ExtraPackages []string

	// Overlay is the ordered metadata patch applied via a generated
	// bbappend in the workspace layer
	Overlay []Statement
}

// Invoker runs build-system tasks against an image with an optional
// metadata overlay. It owns all actual build execution; callers only
// see the resulting exit code and output directory.
type Invoker interface {
	RunTask(opts RunTaskOptions) (result int, outputDir string, err error)
}

// execInvoker writes the overlay into the workspace appends directory
// and spawns bitbake
type execInvoker struct {
	fs         afero.Fs
	bitbakeCmd string
	buildDir   string
	appendsDir string
	logger     zerolog.Logger

	// runCmd is the process-spawning seam, replaceable in tests.
	// env holds extra environment entries for the spawned process.
	// It returns the process exit code; err is reserved for failures
	// to spawn at all.
	runCmd func(env []string, name string, args ...string) (int, error)
}

// NewInvoker creates a bitbake-backed Invoker writing appends through
// the given filesystem
func NewInvoker(cfg *config.Config, appendsDir, buildDir string, fs afero.Fs) Invoker {
	inv := &execInvoker{
		fs:         fs,
		bitbakeCmd: cfg.BitBake.Command,
		buildDir:   buildDir,
		appendsDir: appendsDir,
		logger:     logging.GetLogger("bitbake.invoker"),
	}
	inv.runCmd = inv.execBitbake
	return inv
}

func (inv *execInvoker) RunTask(opts RunTaskOptions) (int, string, error) {
	if opts.Image == "" {
		return -1, "", errors.New(errors.ErrInvalidInput, "image recipe must be specified")
	}
	if opts.Task == "" {
		return -1, "", errors.New(errors.ErrInvalidInput, "task must be specified")
	}

	statements := opts.Overlay
	if len(opts.ExtraPackages) > 0 {
		// copy so the append never writes into the caller's backing array
		statements = make([]Statement, len(opts.Overlay), len(opts.Overlay)+1)
		copy(statements, opts.Overlay)
		statements = append(statements,
			Append("IMAGE_INSTALL", strings.Join(opts.ExtraPackages, " ")))
	}

	if len(statements) > 0 {
		if err := inv.writeAppend(opts.Image, statements); err != nil {
			return -1, "", err
		}
	}

	inv.logger.Info().
		Str("image", opts.Image).
		Str("task", opts.Task).
		Int("overlayStatements", len(statements)).
		Msg("Invoking bitbake")

	code, err := inv.runCmd(inv.taskEnv(), inv.bitbakeCmd, opts.Image, "-c", opts.Task)
	if err != nil {
		return -1, "", errors.Wrapf(err, errors.ErrBuildFailed,
			"failed to run %s for image %s", inv.bitbakeCmd, opts.Image)
	}

	outputDir := filepath.Join(inv.buildDir, "tmp", "deploy", "images")
	return code, outputDir, nil
}

// writeAppend materializes the overlay as <image>.bbappend in the
// workspace appends directory, replacing any previous version
func (inv *execInvoker) writeAppend(image string, statements []Statement) error {
	if err := inv.fs.MkdirAll(inv.appendsDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate,
			"failed to create appends directory %s", inv.appendsDir)
	}

	appendPath := filepath.Join(inv.appendsDir, image+".bbappend")
	content := appendHeader + RenderAll(statements)
	if err := afero.WriteFile(inv.fs, appendPath, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrAppendWrite,
			"failed to write append file %s", appendPath)
	}

	inv.logger.Debug().Str("path", appendPath).Msg("Wrote bbappend overlay")
	return nil
}

// taskEnv exposes the appends location to the spawned build. The
// workspace layer's layer.conf resolves its BBFILES through
// DEVTOOL_APPENDS_DIR, so the variable must survive BitBake's
// environment filtering via BB_ENV_PASSTHROUGH_ADDITIONS.
func (inv *execInvoker) taskEnv() []string {
	return []string{
		"DEVTOOL_APPENDS_DIR=" + inv.appendsDir,
		"BB_ENV_PASSTHROUGH_ADDITIONS=DEVTOOL_APPENDS_DIR",
	}
}

func (inv *execInvoker) execBitbake(env []string, name string, args ...string) (int, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = inv.buildDir
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
