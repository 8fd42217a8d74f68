package bitbake

// RecipeData is a read-only view of a parsed recipe's variables.
// Records come from the external metadata provider and are opaque to
// devtool beyond named variable lookup.
type RecipeData interface {
	// GetVar returns the value of the named variable, or "" if unset
	GetVar(name string) string

	// GetVarDefault returns the value of the named variable, or def if unset
	GetVarDefault(name, def string) string
}

// VarMap is a RecipeData backed by a plain map. The exec-backed tinfoil
// session produces these, and tests script them directly.
type VarMap map[string]string

func (m VarMap) GetVar(name string) string {
	return m[name]
}

func (m VarMap) GetVarDefault(name, def string) string {
	if v, ok := m[name]; ok {
		return v
	}
	return def
}
