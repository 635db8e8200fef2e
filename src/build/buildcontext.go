// BuildContext orchestrates a single build: it resolves the requested
// targets to a topological rule sequence, then runs each rule in order,
// skipping ones whose cache key is already satisfied and recording
// outputs so later rules can resolve rule-reference srcs against them.

package build

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/Reregistered/games-framework/src/cmap"
	"github.com/Reregistered/games-framework/src/core"
	"github.com/Reregistered/games-framework/src/logging"
)

// BuildContext ties a Project, its RuleGraph, a BuildEnvironment, a kind
// Registry and a CacheStore together for the duration of one build.
type BuildContext struct {
	project  *core.Project
	graph    *core.RuleGraph
	env      *BuildEnvironment
	registry *Registry
	cache    *CacheStore

	// outputs indexes the output paths each already-completed rule in
	// this run produced, keyed by full rule name, so later rules in the
	// sequence can resolve rule-reference srcs against them. The map is
	// safe for concurrent use, though Run reads and writes it only from
	// its own goroutine.
	outputs *cmap.Map[string, []string]

	errMu sync.Mutex
	errs  *multierror.Error
}

// NewBuildContext constructs a BuildContext ready to run builds against
// project.
func NewBuildContext(project *core.Project, env *BuildEnvironment, registry *Registry, cache *CacheStore) *BuildContext {
	return &BuildContext{
		project:  project,
		graph:    core.NewRuleGraph(project),
		env:      env,
		registry: registry,
		cache:    cache,
		outputs:  cmap.New[string, []string](cmap.DefaultShardCount, cmap.HashString),
	}
}

// Errors returns every rule failure and non-fatal cache-write error
// accumulated across the most recent Run, combined into one error, or
// nil if there were none. Run itself reports only pass/fail through its
// bool return so that successfully produced outputs are never hidden
// behind the error return; Errors is for a caller that wants the detail.
func (bc *BuildContext) Errors() error {
	bc.errMu.Lock()
	defer bc.errMu.Unlock()
	return bc.errs.ErrorOrNil()
}

func (bc *BuildContext) addError(err error) {
	bc.errMu.Lock()
	defer bc.errMu.Unlock()
	bc.errs = multierror.Append(bc.errs, err)
}

func (bc *BuildContext) outputsFor(id core.RuleID) ([]string, bool) {
	return bc.outputs.Get(id.FullName())
}

func (bc *BuildContext) recordOutputs(id core.RuleID, outputs []string) {
	bc.outputs.Set(id.FullName(), outputs)
}

// Run resolves targetPaths through the dependency graph and executes
// every rule they transitively require, in dependency order. It returns
// whether every rule succeeded, the full set of output paths produced
// (including ones satisfied from cache), and an error only for a failure
// in sequencing itself (an unresolvable target or a dependency cycle) or
// for a rule whose kind has no registered behavior -- a rule failing to
// build is reported through the bool return, not the error return, so
// that outputs already produced by earlier rules are still visible to
// the caller.
func (bc *BuildContext) Run(ctx context.Context, targetPaths []string) (bool, []string, error) {
	bc.errMu.Lock()
	bc.errs = nil
	bc.errMu.Unlock()

	sequence, err := bc.graph.CalculateRuleSequence(targetPaths)
	if err != nil {
		return false, nil, err
	}

	var allOutputs []string
	success := true
	for _, rule := range sequence {
		if !success {
			logging.Log.Warningf("skipping %s after an earlier failure", rule.FullName())
			continue
		}

		key := rule.ComputeCacheKey()
		if cached, ok := bc.cache.Get(key); ok {
			logging.Log.Debugf("%s: cache hit", rule.FullName())
			bc.recordOutputs(rule.ID(), cached)
			allOutputs = append(allOutputs, cached...)
			continue
		}

		factory, ok := bc.registry.Lookup(rule.Kind())
		if !ok {
			return false, allOutputs, fmt.Errorf("no rule behavior registered for kind %q (rule %s)", rule.Kind(), rule.FullName())
		}

		rc := NewRuleContext(bc, rule, factory(rule))
		logging.Log.Infof("%s: running", rule.FullName())
		if err := rc.begin(ctx); err != nil {
			logging.Log.Errorf("%s: failed: %s", rule.FullName(), err)
			bc.addError(err)
			success = false
			continue
		}

		outputs := rc.Outputs()
		bc.recordOutputs(rule.ID(), outputs)
		if err := bc.cache.Set(key, outputs); err != nil {
			logging.Log.Warningf("%s: failed to write cache entry: %s", rule.FullName(), err)
			bc.addError(fmt.Errorf("caching %s: %w", rule.FullName(), err))
		}
		allOutputs = append(allOutputs, outputs...)
	}

	return success, allOutputs, nil
}
