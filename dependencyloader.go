package espack

import (
	"context"
	"strings"

	"github.com/apex/log"
	"github.com/relationsone/espack/ast"
	"github.com/relationsone/espack/transpile"
)

// moduleGraph holds every transitively reachable module keyed by canonical
// location, plus the order in which modules entered the graph. The order
// slice exists because module ids are assigned by iteration order and Go
// maps would randomize them between runs.
type moduleGraph struct {
	modules map[string]*ast.Module
	order   []string
}

func (g *moduleGraph) insert(location string, module *ast.Module) {
	g.modules[location] = module
	g.order = append(g.order, location)
}

type dependencyLoader struct {
	resolver Resolver
	loader   ResourceLoader
	parser   Parser
}

func newDependencyLoader(resolver Resolver, loader ResourceLoader, parser Parser) *dependencyLoader {
	return &dependencyLoader{
		resolver: resolver,
		loader:   loader,
		parser:   parser,
	}
}

// load builds the module graph for the entry module, breadth first.
// Dependencies of a module are visited in source order; a location already
// in the graph is never loaded again, which also keeps import cycles from
// expanding forever. The first failure aborts the traversal; no partial
// graph is returned.
func (dl *dependencyLoader) load(entryLocation string, entrySource string) (*moduleGraph, error) {
	graph := &moduleGraph{modules: make(map[string]*ast.Module)}

	entry, err := dl.parseAndResolve(entryLocation, entrySource)
	if err != nil {
		return nil, err
	}
	graph.insert(entryLocation, entry)

	queue := []string{entryLocation}
	for len(queue) > 0 {
		location := queue[0]
		queue = queue[1:]

		for _, dependency := range collectDirectDependencies(graph.modules[location]) {
			if _, loaded := graph.modules[dependency]; loaded {
				continue
			}

			log.Debugf("Loader: loading module %s (referenced by %s)", dependency, location)
			source, err := dl.loadSource(dependency)
			if err != nil {
				return nil, err
			}
			module, err := dl.parseAndResolve(dependency, source)
			if err != nil {
				return nil, err
			}
			graph.insert(dependency, module)
			queue = append(queue, dependency)
		}
	}

	log.Debugf("Loader: graph complete with %d modules", len(graph.order))
	return graph, nil
}

func (dl *dependencyLoader) loadSource(location string) (string, error) {
	source, err := dl.loader.LoadResource(location)
	if err != nil {
		return "", newLoadError(location, err)
	}
	if isTypeScript(location) {
		transpiled, err := transpile.TranspileTypescript(context.Background(), strings.NewReader(source))
		if err != nil {
			return "", newLoadError(location, err)
		}
		source = transpiled
	}
	return source, nil
}

func (dl *dependencyLoader) parseAndResolve(location string, source string) (*ast.Module, error) {
	module, err := dl.parser.ParseModule(source)
	if err != nil {
		return nil, newParseError(location, err)
	}
	return resolveSpecifiers(module, dirOf(location), dl.resolver)
}
