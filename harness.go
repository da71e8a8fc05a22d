package espack

import "github.com/relationsone/espack/ast"

// emitBundle wraps the lowered modules into the final script:
//
//	(function (global) {
//	  "use strict";
//	  function require(file, parentModule) { … }
//	  require.modules = {};
//	  require.cache = {};
//	  require.resolve = function (file) { … };
//	  require.define = function (file, fn) { … };
//	  require.define("1", function (module, exports, __dirname, __filename) { … });
//	  …
//	  return require("<entry id>");
//	}).call(this, this);
//
// The script is closed: apart from the global object bound through `this`
// it references only built-ins.
func emitBundle(entryId string, moduleIds []string, lowered map[string]ast.FunctionBody) *ast.Script {
	statements := []ast.Statement{
		requireFunctionDeclaration(),
		initializeRequireModules(),
		initializeRequireCache(),
		requireResolveDefinition(),
		requireDefineDefinition(),
	}
	for _, id := range moduleIds {
		statements = append(statements, requireDefineStatement(id, lowered[id]))
	}
	statements = append(statements, ast.Return(ast.Call(ast.Ident("require"), ast.Str(entryId))))

	wrapper := ast.Function("", []string{"global"}, ast.FunctionBody{
		Directives: []ast.Directive{{RawValue: "use strict"}},
		Statements: statements,
	})
	return &ast.Script{Statements: []ast.Statement{
		ast.ExprStatement(ast.Call(ast.Member(wrapper, "call"), ast.This(), ast.This())),
	}}
}

func requireCacheFile() ast.Expression {
	return ast.Index(ast.Member(ast.Ident("require"), "cache"), ast.Ident("file"))
}

// requireFunctionDeclaration builds `function require(file, parentModule)`.
// The exports object is published to the cache before the module body runs
// so cyclic requires observe the partially populated object instead of
// recursing, and re-published afterwards because the body may have
// reassigned module.exports.
func requireFunctionDeclaration() ast.Statement {
	moduleObject := &ast.ObjectLiteral{Properties: []ast.ObjectProperty{
		{Name: "id", Value: ast.Ident("file")},
		{Name: "require", Value: ast.Ident("require")},
		{Name: "filename", Value: ast.Ident("file")},
		{Name: "exports", Value: ast.EmptyObject()},
		{Name: "loaded", Value: ast.Bool(false)},
		{Name: "parent", Value: ast.Ident("parentModule")},
		{Name: "children", Value: ast.EmptyArray()},
	}}

	dirname := ast.Call(ast.Member(ast.Ident("file"), "slice"),
		ast.Num(0),
		ast.Add(ast.Call(ast.Member(ast.Ident("file"), "lastIndexOf"), ast.Str("/")), ast.Num(1)))

	body := ast.FunctionBody{Statements: []ast.Statement{
		ast.If(ast.HasOwnCall(ast.Member(ast.Ident("require"), "cache"), ast.Ident("file")),
			ast.Return(requireCacheFile())),
		ast.Var("resolved", ast.Call(ast.Member(ast.Ident("require"), "resolve"), ast.Ident("file"))),
		ast.If(ast.Not(ast.Ident("resolved")),
			ast.Throw(ast.New(ast.Ident("Error"), ast.Add(ast.Str("Failed to resolve module "), ast.Ident("file"))))),
		ast.Var("module$", moduleObject),
		ast.If(ast.Ident("parentModule"),
			ast.ExprStatement(ast.Call(
				ast.Member(ast.Member(ast.Ident("parentModule"), "children"), "push"),
				ast.Ident("module$")))),
		ast.Var("dirname", dirname),
		ast.ExprStatement(ast.Assign(requireCacheFile(), ast.Member(ast.Ident("module$"), "exports"))),
		// Module top-level `this` is undefined:
		// https://tc39.github.io/ecma262/#sec-module-environment-records-getthisbinding
		ast.ExprStatement(ast.Call(ast.Member(ast.Ident("resolved"), "call"),
			ast.Undefined(),
			ast.Ident("module$"),
			ast.Member(ast.Ident("module$"), "exports"),
			ast.Ident("dirname"),
			ast.Ident("file"))),
		ast.ExprStatement(ast.Assign(ast.Member(ast.Ident("module$"), "loaded"), ast.Bool(true))),
		ast.Return(ast.Assign(requireCacheFile(), ast.Member(ast.Ident("module$"), "exports"))),
	}}

	return &ast.FunctionDeclaration{
		Name:   "require",
		Params: []string{"file", "parentModule"},
		Body:   body,
	}
}

func initializeRequireModules() ast.Statement {
	return ast.ExprStatement(ast.Assign(ast.Member(ast.Ident("require"), "modules"), ast.EmptyObject()))
}

func initializeRequireCache() ast.Statement {
	return ast.ExprStatement(ast.Assign(ast.Member(ast.Ident("require"), "cache"), ast.EmptyObject()))
}

// requireResolveDefinition builds the registry lookup. hasOwnProperty is
// borrowed from a literal so a module shadowing it on require.modules
// cannot break resolution.
func requireResolveDefinition() ast.Statement {
	requireModules := func() ast.Expression {
		return ast.Member(ast.Ident("require"), "modules")
	}
	body := ast.FunctionBody{Statements: []ast.Statement{
		ast.Return(ast.Cond(
			ast.HasOwnCall(requireModules(), ast.Ident("file")),
			ast.Index(requireModules(), ast.Ident("file")),
			ast.Undefined())),
	}}
	return ast.ExprStatement(ast.Assign(
		ast.Member(ast.Ident("require"), "resolve"),
		ast.Function("", []string{"file"}, body)))
}

func requireDefineDefinition() ast.Statement {
	body := ast.FunctionBody{Statements: []ast.Statement{
		ast.ExprStatement(ast.Assign(
			ast.Index(ast.Member(ast.Ident("require"), "modules"), ast.Ident("file")),
			ast.Ident("fn"))),
	}}
	return ast.ExprStatement(ast.Assign(
		ast.Member(ast.Ident("require"), "define"),
		ast.Function("", []string{"file", "fn"}, body)))
}

func requireDefineStatement(id string, body ast.FunctionBody) ast.Statement {
	fn := ast.Function("", []string{"module", "exports", "__dirname", "__filename"}, body)
	return ast.ExprStatement(ast.Call(ast.Member(ast.Ident("require"), "define"), ast.Str(id), fn))
}
