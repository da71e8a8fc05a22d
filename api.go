package espack

import (
	"github.com/spf13/afero"
	"github.com/relationsone/espack/ast"
	"github.com/relationsone/espack/parser"
)

type defaultParser struct {
}

func (defaultParser) ParseModule(source string) (*ast.Module, error) {
	return parser.Parse(source)
}

// NewParser returns the default module parser.
func NewParser() Parser {
	return defaultParser{}
}

// Bundle bundles the module at the given path and its transitive
// dependencies into a single script AST, using the default resolver and
// loader over the host filesystem. Render the result with codegen.Generate.
func Bundle(entryPath string) (*ast.Script, error) {
	fs := afero.NewOsFs()
	return BundleWith(entryPath, NewFileSystemResolver(fs), NewFileLoader(fs))
}

// BundleWith bundles the module at the given path using the supplied
// resolver and loader.
func BundleWith(entryPath string, resolver Resolver, loader ResourceLoader) (*ast.Script, error) {
	source, err := loader.LoadResource(entryPath)
	if err != nil {
		return nil, newLoadError(entryPath, err)
	}
	return BundleString(source, entryPath, resolver, loader)
}

// BundleString bundles a module whose source is supplied directly; the
// loader is only consulted for dependencies.
func BundleString(source string, entryPath string, resolver Resolver, loader ResourceLoader) (*ast.Script, error) {
	return bundleString(source, entryPath, resolver, loader, NewParser())
}
