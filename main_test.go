package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"prodpick/internal/catalog"
	"prodpick/internal/config"
	"prodpick/internal/domain"
	"prodpick/internal/eventbus"
	itemset "prodpick/internal/selection"
)

const testCatalog = `products:
  - id: 1
    name: Red Mug
    type: simple
    sku: MUG-RED
  - id: 2
    name: Blue Mug
    type: simple
  - id: 3
    name: Red Plate
    type: variable
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeCatalog(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0644))
	return dir, path
}

func TestSelectCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"batch add dedupes", []string{"--selected", "1,2", "--add", "2,3,3,4"}, "1\n2\n3\n4\n"},
		{"batch remove", []string{"--selected", "1,2,3,4", "--remove", "2,4"}, "1\n3\n"},
		{"remove non-member", []string{"--selected", "1,2", "--remove", "5"}, "1\n2\n"},
		{"add then remove", []string{"--add", "7", "--remove", "7"}, ""},
		{"single value", []string{"--single-value", "5"}, "5\n"},
		{"single value grows", []string{"--single-value", "5", "--add", "6"}, "5\n6\n"},
		{"single value removed", []string{"--single-value", "5", "--remove", "5"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"select"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestSelectRejectsBothStartingPoints(t *testing.T) {
	_, err := execute(t, "select", "--selected", "1", "--single-value", "2")
	assert.Error(t, err)
}

func TestFilterCommand(t *testing.T) {
	dir, path := writeCatalog(t)
	cfgPath := filepath.Join(dir, config.FileName)

	out, err := execute(t, "filter", "RED", "--catalog", path, "--config", cfgPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Red Mug")
	assert.Contains(t, out, "Red Plate")
	assert.Contains(t, out, "[variable]")
	assert.NotContains(t, out, "Blue Mug")
	assert.Less(t, bytes.Index([]byte(out), []byte("Red Mug")), bytes.Index([]byte(out), []byte("Red Plate")))
}

func TestFilterBlankQueryListsEverything(t *testing.T) {
	dir, path := writeCatalog(t)

	out, err := execute(t, "filter", "   ", "--catalog", path, "--config", filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Contains(t, out, "Blue Mug")
	assert.Contains(t, out, "Red Mug")
}

func TestFilterWithoutCatalog(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "filter", "mug", "--config", filepath.Join(dir, config.FileName))
	assert.ErrorIs(t, err, errNoCatalog)
}

func TestFilterRejectsBadLocale(t *testing.T) {
	dir, path := writeCatalog(t)
	_, err := execute(t, "filter", "mug", "--catalog", path, "--locale", "not a tag!", "--config", filepath.Join(dir, config.FileName))
	assert.Error(t, err)
}

func TestInitWritesConfigUsedByFilter(t *testing.T) {
	dir, path := writeCatalog(t)
	cfgPath := filepath.Join(dir, config.FileName)

	out, err := execute(t, "init", "--catalog", path, "--locale", "tr", "--single", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")

	cfg, err := config.NewConfigService(cfgPath).Load()
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Catalog)
	assert.Equal(t, "tr", cfg.Locale)
	assert.True(t, cfg.IsSingleSelect())

	_, err = execute(t, "init", "--catalog", path, "--config", cfgPath)
	assert.Error(t, err, "init must not overwrite without --force")

	out, err = execute(t, "filter", "blue", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Blue Mug")
}

func TestInitialSelection(t *testing.T) {
	store := catalog.NewMemoryProductStore([]domain.Product{
		{ID: 1, Name: "Red Mug", Type: domain.ProductSimple},
		{ID: 3, Name: "Red Plate", Type: domain.ProductSimple},
	})

	sel, unknown := initialSelection(store, nil, false)
	assert.True(t, sel.IsEmpty())
	assert.Empty(t, unknown)

	multi, unknown := initialSelection(store, []int64{3, 1, 3}, false)
	assert.Equal(t, []domain.ProductID{3, 1}, multi.IDs())
	assert.Empty(t, unknown)

	single, _ := initialSelection(store, []int64{3, 1}, true)
	assert.Equal(t, itemset.KindSingle, single.Kind())
	assert.Equal(t, []domain.ProductID{3}, single.IDs())
}

func TestInitialSelectionDropsUnknownIDs(t *testing.T) {
	store := catalog.NewMemoryProductStore([]domain.Product{
		{ID: 1, Name: "Red Mug", Type: domain.ProductSimple},
	})

	sel, unknown := initialSelection(store, []int64{99, 1, 42}, false)
	assert.Equal(t, []domain.ProductID{1}, sel.IDs())
	assert.Equal(t, []int64{99, 42}, unknown)

	single, unknown := initialSelection(store, []int64{99, 1}, true)
	assert.Equal(t, []domain.ProductID{1}, single.IDs(), "single mode keeps the first known id")
	assert.Equal(t, []int64{99}, unknown)

	none, _ := initialSelection(store, []int64{99}, true)
	assert.True(t, none.IsEmpty())
}

func TestFilterListsVariationsUnderParent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`products:
  - id: 11
    name: Hoodie - L
    type: variable
    is_variation: true
    parent_id: 10
  - id: 20
    name: Mug
    type: simple
  - id: 10
    name: Hoodie
    type: variable
`), 0644))

	out, err := execute(t, "filter", "--catalog", path, "--config", filepath.Join(dir, config.FileName))
	require.NoError(t, err)

	var order []string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		order = append(order, strings.Fields(line)[0])
	}
	assert.Equal(t, []string{"20", "10", "11"}, order)
}

func TestLogEvents(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bus := eventbus.New(nil)
	defer bus.Close()

	stop := logEvents(bus, zap.New(core))
	bus.Publish(eventbus.CatalogLoadedEvent{Path: "catalog.yaml", Products: 3})
	bus.Publish(eventbus.SelectionChangedEvent{Added: []domain.ProductID{1}, Total: 1})
	bus.Publish(eventbus.SelectionClearedEvent{})
	bus.Publish(eventbus.FilterChangedEvent{Query: "red", MatchCount: 2})

	require.Eventually(t, func() bool { return logs.Len() == 4 }, time.Second, 10*time.Millisecond)
	for _, msg := range []string{"catalog loaded", "selection changed", "selection cleared", "filter changed"} {
		assert.Equal(t, 1, logs.FilterMessage(msg).Len(), msg)
	}

	stop()
	bus.Publish(eventbus.SelectionClearedEvent{})
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 4, logs.Len(), "no logging after stop")
}

func TestWatchCatalogStopWaitsForWatcher(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	_, path := writeCatalog(t)
	store := catalog.NewMemoryProductStore(nil)
	bus := eventbus.New(nil)

	reloaded := make(chan int, 1)
	bus.Subscribe(eventbus.EventCatalogReloaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.CatalogReloadedEvent); ok {
			select {
			case reloaded <- len(event.Products):
			default:
			}
		}
	})

	w, err := catalog.NewWatcher(path, store, bus, nil)
	require.NoError(t, err)
	stop := watchCatalog(context.Background(), w, zap.NewNop())

	// Keep rewriting until the watcher has picked the file up
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(testCatalog), 0644)
		select {
		case n := <-reloaded:
			return n == 3
		default:
			return false
		}
	}, 3*time.Second, 50*time.Millisecond)

	stop()
	bus.Close()
	assert.Equal(t, 3, store.Len())
}
