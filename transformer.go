package espack

import (
	"strings"

	"github.com/relationsone/espack/ast"
)

// lowerModule converts a module whose specifiers have been rewritten to
// module ids into the body of a
// `function (module, exports, __dirname, __filename)`. Import bindings
// hoist to the top of the body; everything else keeps source order.
//
// Exports become plain property writes on `exports`, so the live-binding
// semantics of ES modules degrade to value snapshots taken when the
// exporting statement runs; importers of a module that later reassigns a
// module-level binding keep the old value.
func lowerModule(module *ast.Module) ast.FunctionBody {
	var imports []ast.Statement
	var body []ast.Statement

	for _, item := range module.Items {
		switch it := item.(type) {
		case *ast.ImportDeclaration:
			imports = append(imports, lowerImport(it)...)
		case *ast.ImportNamespace:
			imports = append(imports, lowerImportNamespace(it)...)
		case *ast.ExportDefault:
			body = append(body, lowerExportDefault(it)...)
		case *ast.ExportDeclaration:
			body = append(body, lowerExportDeclaration(it)...)
		case *ast.ExportLocals:
			body = append(body, lowerExportLocals(it)...)
		case *ast.ExportFrom:
			body = append(body, lowerExportFrom(it)...)
		case *ast.ExportAllFrom:
			body = append(body, lowerExportAllFrom(it))
		case *ast.RawStatement:
			body = append(body, it)
		}
	}

	return ast.FunctionBody{
		Directives: module.Directives,
		Statements: append(imports, body...),
	}
}

// requireModule builds `require("<id>", module)`. The runtime caches by
// id, so repeated calls for the same module are cheap and evaluate the
// body only once.
func requireModule(id string) ast.Expression {
	return ast.Call(ast.Ident("require"), ast.Str(id), ast.Ident("module"))
}

func exportsMember(name string) ast.Expression {
	return ast.Member(ast.Ident("exports"), name)
}

func lowerImport(it *ast.ImportDeclaration) []ast.Statement {
	if it.Default == "" && len(it.Named) == 0 {
		// side-effect import
		return []ast.Statement{ast.ExprStatement(requireModule(it.Specifier))}
	}
	var statements []ast.Statement
	if it.Default != "" {
		statements = append(statements, ast.Var(it.Default, ast.Member(requireModule(it.Specifier), "default")))
	}
	for _, specifier := range it.Named {
		statements = append(statements, ast.Var(specifier.Local, ast.Member(requireModule(it.Specifier), specifier.Imported)))
	}
	return statements
}

func lowerImportNamespace(it *ast.ImportNamespace) []ast.Statement {
	var statements []ast.Statement
	if it.Default != "" {
		statements = append(statements, ast.Var(it.Default, ast.Member(requireModule(it.Specifier), "default")))
	}
	statements = append(statements, ast.Var(it.Binding, requireModule(it.Specifier)))
	return statements
}

func lowerExportDefault(it *ast.ExportDefault) []ast.Statement {
	if it.Name != "" {
		// Named declaration form: keep the declaration so the module can
		// refer to itself by name, then publish it.
		return []ast.Statement{
			ast.Raw(it.Text),
			ast.ExprStatement(ast.Assign(exportsMember("default"), ast.Ident(it.Name))),
		}
	}
	return []ast.Statement{
		ast.ExprStatement(ast.Assign(exportsMember("default"), &ast.RawExpression{Text: it.Text})),
	}
}

func lowerExportDeclaration(it *ast.ExportDeclaration) []ast.Statement {
	statements := []ast.Statement{ast.Raw(ensureTerminated(it.Text))}
	for _, name := range it.Names {
		statements = append(statements, ast.ExprStatement(ast.Assign(exportsMember(name), ast.Ident(name))))
	}
	return statements
}

func lowerExportLocals(it *ast.ExportLocals) []ast.Statement {
	var statements []ast.Statement
	for _, specifier := range it.Specifiers {
		statements = append(statements, ast.ExprStatement(ast.Assign(exportsMember(specifier.Exported), ast.Ident(specifier.Name))))
	}
	return statements
}

// lowerExportFrom re-exports named bindings without creating local ones.
func lowerExportFrom(it *ast.ExportFrom) []ast.Statement {
	var statements []ast.Statement
	for _, specifier := range it.Specifiers {
		statements = append(statements, ast.ExprStatement(ast.Assign(
			exportsMember(specifier.Exported),
			ast.Member(requireModule(it.Specifier), specifier.Name))))
	}
	return statements
}

// lowerExportAllFrom copies every own enumerable export except default:
//
//	Object.keys(require("id", module)).forEach(function (k) {
//	  if (k !== "default") exports[k] = require("id", module)[k];
//	});
//
// The callback keeps the loop variable out of the module's scope.
func lowerExportAllFrom(it *ast.ExportAllFrom) ast.Statement {
	copyBody := ast.FunctionBody{Statements: []ast.Statement{
		ast.If(ast.NotEqual(ast.Ident("k"), ast.Str("default")),
			ast.ExprStatement(ast.Assign(
				ast.Index(ast.Ident("exports"), ast.Ident("k")),
				ast.Index(requireModule(it.Specifier), ast.Ident("k"))))),
	}}
	keys := ast.Call(ast.Member(ast.Ident("Object"), "keys"), requireModule(it.Specifier))
	return ast.ExprStatement(ast.Call(ast.Member(keys, "forEach"), ast.Function("", []string{"k"}, copyBody)))
}

func ensureTerminated(text string) string {
	if strings.HasSuffix(text, "}") || strings.HasSuffix(text, ";") {
		return text
	}
	return text + ";"
}
