package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relationsone/espack/ast"
)

func TestParseImportForms(t *testing.T) {
	as := require.New(t)

	module, err := Parse(`
import d from "./a";
import { x, y as z } from "./b";
import * as ns from "./c";
import d2, { w } from "./d";
import d3, * as ns2 from "./e";
import "./f";
`)
	as.NoError(err)
	as.Len(module.Items, 6)

	imp := module.Items[0].(*ast.ImportDeclaration)
	as.Equal("d", imp.Default)
	as.Empty(imp.Named)
	as.Equal("./a", imp.Specifier)

	named := module.Items[1].(*ast.ImportDeclaration)
	as.Equal("", named.Default)
	as.Equal([]ast.ImportSpecifier{{Imported: "x", Local: "x"}, {Imported: "y", Local: "z"}}, named.Named)

	namespace := module.Items[2].(*ast.ImportNamespace)
	as.Equal("ns", namespace.Binding)
	as.Equal("./c", namespace.Specifier)

	mixed := module.Items[3].(*ast.ImportDeclaration)
	as.Equal("d2", mixed.Default)
	as.Equal([]ast.ImportSpecifier{{Imported: "w", Local: "w"}}, mixed.Named)

	mixedNs := module.Items[4].(*ast.ImportNamespace)
	as.Equal("d3", mixedNs.Default)
	as.Equal("ns2", mixedNs.Binding)

	bare := module.Items[5].(*ast.ImportDeclaration)
	as.Equal("", bare.Default)
	as.Empty(bare.Named)
	as.Equal("./f", bare.Specifier)
}

func TestParseExportForms(t *testing.T) {
	as := require.New(t)

	module, err := Parse(`
export default 42;
export var a = 1, b = 2;
export let c = f(1, 2);
export function g(x) { return x; }
export class H extends Base { constructor() { super(); } }
export { a, b as bb };
export { p, q as qq } from "./other";
export * from "./all";
`)
	as.NoError(err)
	as.Len(module.Items, 8)

	def := module.Items[0].(*ast.ExportDefault)
	as.Equal("", def.Name)
	as.Equal("42", def.Text)

	vars := module.Items[1].(*ast.ExportDeclaration)
	as.Equal([]string{"a", "b"}, vars.Names)
	as.Equal("var a = 1, b = 2", vars.Text)

	lets := module.Items[2].(*ast.ExportDeclaration)
	as.Equal([]string{"c"}, lets.Names)

	fn := module.Items[3].(*ast.ExportDeclaration)
	as.Equal([]string{"g"}, fn.Names)
	as.Equal("function g(x) { return x; }", fn.Text)

	class := module.Items[4].(*ast.ExportDeclaration)
	as.Equal([]string{"H"}, class.Names)

	locals := module.Items[5].(*ast.ExportLocals)
	as.Equal([]ast.ExportSpecifier{{Name: "a", Exported: "a"}, {Name: "b", Exported: "bb"}}, locals.Specifiers)

	from := module.Items[6].(*ast.ExportFrom)
	as.Equal("./other", from.Specifier)
	as.Equal([]ast.ExportSpecifier{{Name: "p", Exported: "p"}, {Name: "q", Exported: "qq"}}, from.Specifiers)

	all := module.Items[7].(*ast.ExportAllFrom)
	as.Equal("./all", all.Specifier)
}

func TestParseExportDefaultDeclarations(t *testing.T) {
	as := require.New(t)

	module, err := Parse(`export default function f() { return 1; }`)
	as.NoError(err)
	named := module.Items[0].(*ast.ExportDefault)
	as.Equal("f", named.Name)
	as.Equal("function f() { return 1; }", named.Text)

	module, err = Parse(`export default function () { return 1; }`)
	as.NoError(err)
	anon := module.Items[0].(*ast.ExportDefault)
	as.Equal("", anon.Name)

	module, err = Parse(`export default class C {}`)
	as.NoError(err)
	class := module.Items[0].(*ast.ExportDefault)
	as.Equal("C", class.Name)
}

func TestParseDirectives(t *testing.T) {
	as := require.New(t)

	module, err := Parse("\"use strict\";\n'use asm';\nvar x = 1;")
	as.NoError(err)
	as.Len(module.Directives, 2)
	as.Equal("use strict", module.Directives[0].RawValue)
	as.Equal("use asm", module.Directives[1].RawValue)
	as.Len(module.Items, 1)
}

func TestParseStringIsNotDirective(t *testing.T) {
	as := require.New(t)

	module, err := Parse(`"abc".split("");`)
	as.NoError(err)
	as.Empty(module.Directives)
	as.Len(module.Items, 1)
}

func TestParseImportLikeTextIgnored(t *testing.T) {
	as := require.New(t)

	module, err := Parse("var s = \"import a from './x'\";\n" +
		"// import b from './x'\n" +
		"/* export * from './x' */\n" +
		"var t = `export ${s} from './x'`;\n" +
		"var r = /import/g;\n")
	as.NoError(err)
	as.Len(module.Items, 1)
	_, isRaw := module.Items[0].(*ast.RawStatement)
	as.True(isRaw)
}

func TestParseDynamicImportStaysRaw(t *testing.T) {
	as := require.New(t)

	module, err := Parse("import(\"./x\").then(function (m) { use(m); });")
	as.NoError(err)
	as.Len(module.Items, 1)
	_, isRaw := module.Items[0].(*ast.RawStatement)
	as.True(isRaw)
}

func TestParseRawBetweenDeclarations(t *testing.T) {
	as := require.New(t)

	module, err := Parse(`
import a from "./a";
function helper() { return a; }
var state = helper();
export default state;
`)
	as.NoError(err)
	as.Len(module.Items, 3)
	_, isImport := module.Items[0].(*ast.ImportDeclaration)
	as.True(isImport)
	raw := module.Items[1].(*ast.RawStatement)
	as.Contains(raw.Text, "function helper()")
	as.Contains(raw.Text, "var state = helper();")
	_, isDefault := module.Items[2].(*ast.ExportDefault)
	as.True(isDefault)
}

func TestParseAutomaticSemicolonInsertion(t *testing.T) {
	as := require.New(t)

	module, err := Parse("export default 42\nconsole.log(\"after\")\n")
	as.NoError(err)
	as.Len(module.Items, 2)
	as.Equal("42", module.Items[0].(*ast.ExportDefault).Text)

	module, err = Parse("export var v = 1\nexport var w = 2\n")
	as.NoError(err)
	as.Len(module.Items, 2)
	as.Equal([]string{"v"}, module.Items[0].(*ast.ExportDeclaration).Names)
	as.Equal([]string{"w"}, module.Items[1].(*ast.ExportDeclaration).Names)
}

func TestParseDestructuringExportRejected(t *testing.T) {
	as := require.New(t)

	_, err := Parse("export const { a, b } = pair;")
	as.Error(err)

	var parseErr *Error
	as.ErrorAs(err, &parseErr)
	as.Contains(parseErr.Message, "destructuring")
	as.Equal(1, parseErr.Line)
	as.Greater(parseErr.Column, 1)
}

func TestParseExportStarAsRejected(t *testing.T) {
	as := require.New(t)

	_, err := Parse(`export * as ns from "./x";`)
	as.Error(err)
	as.Contains(err.Error(), "not supported")
}

func TestParseUnterminatedString(t *testing.T) {
	as := require.New(t)

	_, err := Parse("import x from \"./broken\nvar y = 1;")
	as.Error(err)

	var parseErr *Error
	as.ErrorAs(err, &parseErr)
	as.Equal(1, parseErr.Line)
}
