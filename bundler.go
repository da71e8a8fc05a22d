package espack

import (
	"strconv"

	"github.com/apex/log"
	"github.com/relationsone/espack/ast"
	uuid "github.com/satori/go.uuid"
)

// bundleString runs the full pipeline on an already-loaded entry source:
// build the module graph, assign ids, rewrite specifiers to ids, lower
// every module to a function body and emit the harness script.
func bundleString(source string, entryLocation string, resolver Resolver, loader ResourceLoader, moduleParser Parser) (*ast.Script, error) {
	// The build id only labels log lines; failing to generate one is not a
	// bundling failure, so the zero id is logged instead.
	buildId, _ := uuid.NewV4()
	log.Debugf("Bundler: bundling %s (build %s)", entryLocation, buildId)

	graph, err := newDependencyLoader(resolver, loader, moduleParser).load(entryLocation, source)
	if err != nil {
		return nil, err
	}

	// Bundling with absolute locations would leak filesystem paths into
	// the output; map every location to a short generated id instead.
	ids := make(map[string]string, len(graph.order))
	for i, location := range graph.order {
		ids[location] = strconv.Itoa(i + 1)
	}

	moduleIds := make([]string, 0, len(graph.order))
	lowered := make(map[string]ast.FunctionBody, len(graph.order))
	for _, location := range graph.order {
		mapped, err := mapSpecifiers(graph.modules[location], ids)
		if err != nil {
			return nil, err
		}
		lowered[ids[location]] = lowerModule(mapped)
		moduleIds = append(moduleIds, ids[location])
	}

	log.Debugf("Bundler: emitting %d modules for %s (build %s)", len(moduleIds), entryLocation, buildId)
	return emitBundle(ids[entryLocation], moduleIds, lowered), nil
}
