// Package testutil provides shared fakes for testing devtool against
// the build-system collaborator seams without a build system present.
package testutil

import (
	"github.com/bitbakery/devtool/pkg/bitbake"
	"github.com/bitbakery/devtool/pkg/errors"
)

// FakeTinfoil is a scripted metadata session. Recipes maps recipe names
// to their variable records; lookups of unknown names fail the way the
// real session does.
type FakeTinfoil struct {
	Recipes map[string]bitbake.VarMap

	// ParseCalls records every recipe name looked up, in order
	ParseCalls []string

	// ShutdownCalls counts Shutdown invocations
	ShutdownCalls int
}

// NewFakeTinfoil creates a FakeTinfoil with the given recipe records
func NewFakeTinfoil(recipes map[string]bitbake.VarMap) *FakeTinfoil {
	return &FakeTinfoil{Recipes: recipes}
}

func (f *FakeTinfoil) ParseRecipe(name string) (bitbake.RecipeData, error) {
	f.ParseCalls = append(f.ParseCalls, name)
	rd, ok := f.Recipes[name]
	if !ok {
		return nil, errors.Newf(errors.ErrRecipeNotFound,
			"unable to find or parse recipe for package %s", name)
	}
	return rd, nil
}

func (f *FakeTinfoil) Shutdown() error {
	f.ShutdownCalls++
	return nil
}

// FakeInvoker records RunTask invocations and returns a scripted result
type FakeInvoker struct {
	// Result is the exit code to return
	Result int

	// OutputDir is the output directory to return
	OutputDir string

	// Err, when set, is returned instead of a result code
	Err error

	// Calls records every RunTask invocation
	Calls []bitbake.RunTaskOptions
}

func (f *FakeInvoker) RunTask(opts bitbake.RunTaskOptions) (int, string, error) {
	f.Calls = append(f.Calls, opts)
	if f.Err != nil {
		return -1, "", f.Err
	}
	return f.Result, f.OutputDir, nil
}
