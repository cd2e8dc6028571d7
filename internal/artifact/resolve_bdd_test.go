package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"
)

// ResolveBDDTestContext holds state for one artifact resolution scenario.
type ResolveBDDTestContext struct {
	dir      string
	resolved string
	found    bool
	listing  []string
}

func (ctx *ResolveBDDTestContext) aTasksDirectoryContaining(table *godog.Table) error {
	dir, err := os.MkdirTemp("", "chief-artifact-bdd-")
	if err != nil {
		return err
	}
	ctx.dir = dir

	for _, row := range table.Rows[1:] {
		name := row.Cells[0].Value
		if err := os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *ResolveBDDTestContext) iResolveTheTaskSet(fragment string) error {
	files, err := List(KindTaskSet, ctx.dir)
	if err != nil {
		return err
	}
	ctx.resolved, ctx.found = Resolve(KindTaskSet, files, fragment)
	return nil
}

func (ctx *ResolveBDDTestContext) theResolvedFileShouldBe(want string) error {
	if !ctx.found {
		return fmt.Errorf("expected %s, but nothing resolved", want)
	}
	if ctx.resolved != want {
		return fmt.Errorf("expected %s, got %s", want, ctx.resolved)
	}
	return nil
}

func (ctx *ResolveBDDTestContext) theTaskSetShouldNotBeFound() error {
	if ctx.found {
		return fmt.Errorf("expected no match, got %s", ctx.resolved)
	}
	return nil
}

func (ctx *ResolveBDDTestContext) iListTheTaskSets() error {
	files, err := List(KindTaskSet, ctx.dir)
	if err != nil {
		return err
	}
	ctx.listing = files
	return nil
}

func (ctx *ResolveBDDTestContext) theListingShouldBe(table *godog.Table) error {
	want := make([]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		want = append(want, row.Cells[0].Value)
	}
	if fmt.Sprint(want) != fmt.Sprint(ctx.listing) {
		return fmt.Errorf("expected %v, got %v", want, ctx.listing)
	}
	return nil
}

func (ctx *ResolveBDDTestContext) cleanup() {
	if ctx.dir != "" {
		_ = os.RemoveAll(ctx.dir)
	}
}

// TestResolveBDD runs the artifact resolution feature scenarios
func TestResolveBDD(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			testCtx := &ResolveBDDTestContext{}

			sc.Given(`^a tasks directory containing:$`, testCtx.aTasksDirectoryContaining)
			sc.When(`^I resolve the task set "([^"]*)"$`, testCtx.iResolveTheTaskSet)
			sc.When(`^I list the task sets$`, testCtx.iListTheTaskSets)
			sc.Then(`^the resolved file should be "([^"]*)"$`, testCtx.theResolvedFileShouldBe)
			sc.Then(`^the task set should not be found$`, testCtx.theTaskSetShouldNotBeFound)
			sc.Then(`^the listing should be:$`, testCtx.theListingShouldBe)

			sc.After(func(c context.Context, _ *godog.Scenario, err error) (context.Context, error) {
				testCtx.cleanup()
				return c, err
			})
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
