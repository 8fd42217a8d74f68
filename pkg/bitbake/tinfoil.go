// Package bitbake provides the collaborator seams toward the external
// build system: a tinfoil-style metadata session for recipe variable
// lookup, and a build-task invoker that applies a generated bbappend
// overlay and runs a named task against an image.
package bitbake

import (
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bitbakery/devtool/pkg/config"
	"github.com/bitbakery/devtool/pkg/errors"
	"github.com/bitbakery/devtool/pkg/logging"
)

// recipeVars are the variables fetched eagerly when a recipe is parsed.
// PACKAGES drives ptest detection; PN and PV are kept for logging.
var recipeVars = []string{"PN", "PV", "PACKAGES"}

// Tinfoil is a metadata-provider session. Acquire with NewTinfoil and
// release with Shutdown exactly once, on every exit path.
type Tinfoil interface {
	// ParseRecipe looks up the recipe with the given name and returns
	// its variable record. A recipe that cannot be found or parsed
	// yields an ErrRecipeNotFound error naming the recipe.
	ParseRecipe(name string) (RecipeData, error)

	// Shutdown releases the underlying session
	Shutdown() error
}

// execTinfoil resolves recipe variables by shelling out to
// bitbake-getvar once per variable
type execTinfoil struct {
	getVarCmd string
	buildDir  string
	logger    zerolog.Logger
	closed    bool

	// fetchVar is the process-spawning seam, replaceable in tests
	fetchVar func(recipe, variable string) (string, error)
}

// NewTinfoil opens a metadata session against the configured build
// directory
func NewTinfoil(cfg *config.Config, buildDir string) Tinfoil {
	tf := &execTinfoil{
		getVarCmd: cfg.BitBake.GetVarCommand,
		buildDir:  buildDir,
		logger:    logging.GetLogger("bitbake.tinfoil"),
	}
	tf.fetchVar = tf.execGetVar
	return tf
}

func (tf *execTinfoil) ParseRecipe(name string) (RecipeData, error) {
	if tf.closed {
		return nil, errors.New(errors.ErrInternal, "tinfoil session already shut down")
	}

	record := VarMap{}
	for _, variable := range recipeVars {
		value, err := tf.fetchVar(name, variable)
		if err != nil {
			tf.logger.Debug().
				Err(err).
				Str("recipe", name).
				Str("variable", variable).
				Msg("Recipe variable lookup failed")
			return nil, errors.Newf(errors.ErrRecipeNotFound,
				"unable to find or parse recipe for package %s", name)
		}
		record[variable] = strings.TrimSpace(value)
	}

	tf.logger.Debug().
		Str("recipe", name).
		Str("version", record.GetVar("PV")).
		Msg("Parsed recipe")
	return record, nil
}

func (tf *execTinfoil) Shutdown() error {
	if tf.closed {
		return nil
	}
	tf.closed = true
	tf.logger.Debug().Msg("Tinfoil session shut down")
	return nil
}

func (tf *execTinfoil) execGetVar(recipe, variable string) (string, error) {
	cmd := exec.Command(tf.getVarCmd, "--quiet", "--value", "--recipe", recipe, variable)
	cmd.Dir = tf.buildDir
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
