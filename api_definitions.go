package espack

import "github.com/relationsone/espack/ast"

// Resolver maps a module specifier, as written in an import or export
// declaration, to the canonical location of the module it names. The
// referrer directory is the directory containing the importing module and
// anchors relative specifiers. Implementations must be deterministic for
// equal inputs against a fixed filesystem snapshot.
type Resolver interface {
	Resolve(specifier string, referrerDir string) (string, error)
}

// ResourceLoader produces the source text of the module at a canonical
// location.
type ResourceLoader interface {
	LoadResource(location string) (string, error)
}

// Parser parses module source text into a module AST.
type Parser interface {
	ParseModule(source string) (*ast.Module, error)
}
