// Package paths provides centralized path handling for devtool.
// All filesystem locations the tool reads or writes are derived here so
// the rest of the codebase never assembles paths by hand.
package paths

import (
	"os"
	"path/filepath"

	"github.com/bitbakery/devtool/pkg/errors"
)

// Environment variable names
const (
	// EnvWorkspace is the primary environment variable for the devtool
	// workspace location
	EnvWorkspace = "DEVTOOL_WORKSPACE"

	// EnvBuildDir overrides the BitBake build directory
	EnvBuildDir = "DEVTOOL_BUILDDIR"
)

// Directory and file names inside the workspace.
// These are fixed across installations so that appends written by one
// invocation are picked up by the next.
const (
	// DefaultWorkspaceDir is the default workspace directory name
	DefaultWorkspaceDir = "workspace"

	// AppendsDirName is the subdirectory holding generated bbappend files
	AppendsDirName = "appends"

	// TestImageLogDirName is the subdirectory for on-target test logs
	TestImageLogDirName = "testimage-logs"

	// ConfigFileName is the name of the workspace configuration file
	ConfigFileName = "devtool.toml"
)

// Paths provides centralized path management for devtool
type Paths interface {
	Workspace() string
	BuildDir() string
	AppendsDir() string
	TestImageLogDir() string
	ConfigFilePath() string
}

type paths struct {
	// workspace is the root of the devtool workspace layer
	workspace string

	// buildDir is the BitBake build directory
	buildDir string
}

// New creates a Paths instance rooted at the given workspace directory.
// An empty workspace falls back to EnvWorkspace and then to a
// "workspace" directory under the current working directory.
func New(workspace string) (Paths, error) {
	if workspace == "" {
		workspace = os.Getenv(EnvWorkspace)
	}
	if workspace == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal,
				"cannot determine current directory for workspace fallback")
		}
		workspace = filepath.Join(cwd, DefaultWorkspaceDir)
	}

	workspace, err := filepath.Abs(workspace)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"invalid workspace path %s", workspace)
	}

	buildDir := os.Getenv(EnvBuildDir)
	if buildDir == "" {
		buildDir = filepath.Join(filepath.Dir(workspace), "build")
	}

	return &paths{
		workspace: workspace,
		buildDir:  buildDir,
	}, nil
}

func (p *paths) Workspace() string {
	return p.workspace
}

func (p *paths) BuildDir() string {
	return p.buildDir
}

func (p *paths) AppendsDir() string {
	return filepath.Join(p.workspace, AppendsDirName)
}

func (p *paths) TestImageLogDir() string {
	return filepath.Join(p.workspace, TestImageLogDirName)
}

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.workspace, ConfigFileName)
}
