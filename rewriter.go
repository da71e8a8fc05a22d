package espack

import "github.com/relationsone/espack/ast"

// renameFunc rewrites one module specifier.
type renameFunc func(specifier string) (string, error)

// rewriteSpecifiers applies rename to the specifier of every static
// module-referencing item. Items without a specifier are carried over
// untouched; rewritten items are shallow copies, the input module is never
// mutated.
func rewriteSpecifiers(module *ast.Module, rename renameFunc) (*ast.Module, error) {
	items := make([]ast.ModuleItem, len(module.Items))
	for i, item := range module.Items {
		switch it := item.(type) {
		case *ast.ImportDeclaration:
			specifier, err := rename(it.Specifier)
			if err != nil {
				return nil, err
			}
			clone := *it
			clone.Specifier = specifier
			items[i] = &clone
		case *ast.ImportNamespace:
			specifier, err := rename(it.Specifier)
			if err != nil {
				return nil, err
			}
			clone := *it
			clone.Specifier = specifier
			items[i] = &clone
		case *ast.ExportFrom:
			specifier, err := rename(it.Specifier)
			if err != nil {
				return nil, err
			}
			clone := *it
			clone.Specifier = specifier
			items[i] = &clone
		case *ast.ExportAllFrom:
			specifier, err := rename(it.Specifier)
			if err != nil {
				return nil, err
			}
			clone := *it
			clone.Specifier = specifier
			items[i] = &clone
		default:
			items[i] = item
		}
	}
	return &ast.Module{Directives: module.Directives, Items: items}, nil
}

// resolveSpecifiers canonicalizes every specifier of the module relative
// to the directory containing it. Resolution failures surface as resolve
// errors naming the specifier and the referrer.
func resolveSpecifiers(module *ast.Module, referrerDir string, resolver Resolver) (*ast.Module, error) {
	return rewriteSpecifiers(module, func(specifier string) (string, error) {
		location, err := resolver.Resolve(specifier, referrerDir)
		if err != nil {
			return "", newResolveError(specifier, referrerDir, err)
		}
		return location, nil
	})
}

// mapSpecifiers rewrites canonical locations to their module ids.
func mapSpecifiers(module *ast.Module, ids map[string]string) (*ast.Module, error) {
	return rewriteSpecifiers(module, func(location string) (string, error) {
		return ids[location], nil
	})
}

// collectDirectDependencies returns the specifiers of the four static
// module-referencing forms, in source order.
func collectDirectDependencies(module *ast.Module) []string {
	var dependencies []string
	for _, item := range module.Items {
		switch it := item.(type) {
		case *ast.ImportDeclaration:
			dependencies = append(dependencies, it.Specifier)
		case *ast.ImportNamespace:
			dependencies = append(dependencies, it.Specifier)
		case *ast.ExportFrom:
			dependencies = append(dependencies, it.Specifier)
		case *ast.ExportAllFrom:
			dependencies = append(dependencies, it.Specifier)
		}
	}
	return dependencies
}
