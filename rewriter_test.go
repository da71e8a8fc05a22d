package espack

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relationsone/espack/ast"
	"github.com/relationsone/espack/parser"
)

func TestRewriteSpecifiersTouchesOnlyModuleForms(t *testing.T) {
	as := require.New(t)

	module, err := parser.Parse(`
import a from "./a";
var keep = "./a";
export { x } from "./b";
export * from "./c";
export var local = 1;
`)
	as.NoError(err)

	rewritten, err := rewriteSpecifiers(module, func(specifier string) (string, error) {
		return "#" + specifier, nil
	})
	as.NoError(err)

	as.Equal("#./a", rewritten.Items[0].(*ast.ImportDeclaration).Specifier)
	as.Equal("#./b", rewritten.Items[2].(*ast.ExportFrom).Specifier)
	as.Equal("#./c", rewritten.Items[3].(*ast.ExportAllFrom).Specifier)

	raw := rewritten.Items[1].(*ast.RawStatement)
	as.Contains(raw.Text, `"./a"`)
	local := rewritten.Items[4].(*ast.ExportDeclaration)
	as.Equal([]string{"local"}, local.Names)

	// the input module is left untouched
	as.Equal("./a", module.Items[0].(*ast.ImportDeclaration).Specifier)
}

func TestCollectDirectDependenciesSourceOrder(t *testing.T) {
	as := require.New(t)

	module, err := parser.Parse(`
import "./one";
import * as two from "./two";
export { x } from "./three";
export * from "./four";
export var y = 1;
`)
	as.NoError(err)

	as.Equal([]string{"./one", "./two", "./three", "./four"}, collectDirectDependencies(module))
}
