package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relationsone/espack/ast"
)

func TestGenerateStatements(t *testing.T) {
	as := require.New(t)

	script := &ast.Script{Statements: []ast.Statement{
		ast.Var("x", ast.Num(1)),
		ast.If(ast.Not(ast.Ident("x")),
			ast.Throw(ast.New(ast.Ident("Error"), ast.Add(ast.Str("boom "), ast.Ident("x"))))),
		ast.Return(ast.Cond(ast.Ident("x"), ast.Str("yes"), ast.Undefined())),
	}}

	as.Equal("var x = 1;\n"+
		"if (!x) throw new Error(\"boom \" + x);\n"+
		"return x ? \"yes\" : void 0;\n",
		Generate(script))
}

func TestGenerateIifeCall(t *testing.T) {
	as := require.New(t)

	wrapper := ast.Function("", []string{"global"}, ast.FunctionBody{
		Directives: []ast.Directive{{RawValue: "use strict"}},
		Statements: []ast.Statement{ast.Return(ast.Num(7))},
	})
	script := &ast.Script{Statements: []ast.Statement{
		ast.ExprStatement(ast.Call(ast.Member(wrapper, "call"), ast.This(), ast.This())),
	}}

	as.Equal("(function (global) {\n"+
		"  \"use strict\";\n"+
		"  return 7;\n"+
		"}).call(this, this);\n",
		Generate(script))
}

func TestGenerateHasOwnLookup(t *testing.T) {
	as := require.New(t)

	cacheFile := ast.Index(ast.Member(ast.Ident("require"), "cache"), ast.Ident("file"))
	script := &ast.Script{Statements: []ast.Statement{
		ast.If(ast.HasOwnCall(ast.Member(ast.Ident("require"), "cache"), ast.Ident("file")),
			ast.Return(cacheFile)),
	}}

	as.Equal("if ({}.hasOwnProperty.call(require.cache, file)) return require.cache[file];\n", Generate(script))
}

func TestGenerateStringEscaping(t *testing.T) {
	as := require.New(t)

	script := &ast.Script{Statements: []ast.Statement{
		ast.ExprStatement(ast.Str("a\"b\\c\nd")),
	}}

	as.Equal("\"a\\\"b\\\\c\\nd\";\n", Generate(script))
}
