package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Reregistered/games-framework/src/core"
)

// alwaysSucceed registers a trivial behavior for kind "noop" that writes
// a real file (holding the rule's full name) under the rule's output
// directory and succeeds
// immediately -- enough to exercise BuildContext.Run's sequencing,
// caching and failure-propagation logic without a real rule type. A real
// file is needed because CacheStore.Get only honours a cache hit when
// every recorded output path still exists on disk.
func alwaysSucceed(rule *core.Rule) Behavior {
	return BehaviorFunc(func(rc *RuleContext) error {
		out := rc.GetOutPath(rc.Rule().Name())
		if err := rc.EnsureOutputExists(filepath.Dir(out)); err != nil {
			return err
		}
		if err := os.WriteFile(out, []byte(rc.Rule().FullName()), 0644); err != nil {
			return err
		}
		rc.AppendOutputPaths(out)
		rc.Succeed()
		return nil
	})
}

func alwaysFail(rule *core.Rule) Behavior {
	return BehaviorFunc(func(rc *RuleContext) error {
		return errors.New("intentional failure")
	})
}

func buildFixture(t *testing.T, bKind string) (*core.Project, *Registry) {
	t.Helper()
	a, _ := core.NewRule("noop", "a")
	b, _ := core.NewRule(bKind, "b", core.Deps(":a"))
	c, _ := core.NewRule("noop", "c", core.Deps(":b"))
	m := core.NewModule("m")
	m.AddRule(a)
	m.AddRule(b)
	m.AddRule(c)
	project := core.NewProject(core.WithModules(m))

	registry := NewRegistry()
	registry.Register("noop", alwaysSucceed)
	registry.Register("failing", alwaysFail)
	return project, registry
}

func TestBuildContextRunSucceeds(t *testing.T) {
	project, registry := buildFixture(t, "noop")
	env := newTestEnv(t)
	defer env.Close()
	bc := NewBuildContext(project, env, registry, mustCache(t))

	ok, outputs, err := bc.Run(context.Background(), []string{"m:c"})
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, outputs, 3)
	for _, name := range []string{"a", "b", "c"} {
		assert.Contains(t, outputs, env.OutDir("m")+string(filepath.Separator)+name)
	}
	assert.NoError(t, bc.Errors())
}

func TestBuildContextRunStopsAfterFailure(t *testing.T) {
	project, registry := buildFixture(t, "failing")
	env := newTestEnv(t)
	defer env.Close()
	bc := NewBuildContext(project, env, registry, mustCache(t))

	ok, outputs, err := bc.Run(context.Background(), []string{"m:c"})
	assert.NoError(t, err)
	assert.False(t, ok)
	// a ran and produced output; b failed; c was never started.
	assert.Contains(t, outputs, env.OutDir("m")+string(filepath.Separator)+"a")
	assert.NotContains(t, outputs, env.OutDir("m")+string(filepath.Separator)+"c")
	assert.Error(t, bc.Errors())
}

func TestBuildContextRunUsesCacheOnSecondRun(t *testing.T) {
	project, registry := buildFixture(t, "noop")
	env := newTestEnv(t)
	defer env.Close()
	cache := mustCache(t)
	bc := NewBuildContext(project, env, registry, cache)

	ok, _, err := bc.Run(context.Background(), []string{"m:c"})
	assert.NoError(t, err)
	assert.True(t, ok)

	// A fresh BuildContext over the same project and cache dir should
	// satisfy every rule from cache without needing the registry at all.
	bc2 := NewBuildContext(project, env, NewRegistry(), cache)
	ok, outputs, err := bc2.Run(context.Background(), []string{"m:c"})
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, outputs, 3)
}

func TestBuildContextRunUnknownTarget(t *testing.T) {
	project, registry := buildFixture(t, "noop")
	env := newTestEnv(t)
	defer env.Close()
	bc := NewBuildContext(project, env, registry, mustCache(t))

	_, _, err := bc.Run(context.Background(), []string{"m:missing"})
	assert.Error(t, err)
}
