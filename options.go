package xq

import (
	"strings"

	"github.com/itchyny/gojq"
	"github.com/lestrrat-go/option"
)

type Option = option.Interface

type identModuleLoader struct{}
type identModulePaths struct{}
type identVariable struct{}
type identEnviron struct{}

type variable struct {
	name  string
	value any
}

// WithModuleLoader sets the loader used to resolve `import` and `include`
// directives. It takes precedence over WithModulePaths.
func WithModuleLoader(l gojq.ModuleLoader) Option {
	return option.New(identModuleLoader{}, l)
}

// WithModulePaths adds directories searched for modules. A leading `~`
// is expanded to the home directory. May be given more than once.
func WithModulePaths(paths ...string) Option {
	return option.New(identModulePaths{}, paths)
}

// WithVariable binds a global variable. The `$` prefix is optional. A
// later binding of the same name replaces an earlier one.
func WithVariable(name string, value any) Option {
	if !strings.HasPrefix(name, "$") {
		name = "$" + name
	}
	return option.New(identVariable{}, variable{name: name, value: value})
}

// WithEnviron sets the source of `$ENV` and `env`, typically os.Environ.
func WithEnviron(f func() []string) Option {
	return option.New(identEnviron{}, f)
}
