package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prodpick/internal/catalog"
	"prodpick/internal/config"
	"prodpick/internal/domain"
	"prodpick/internal/eventbus"
	"prodpick/internal/logging"
	itemset "prodpick/internal/selection"
	"prodpick/internal/ui"
)

// options holds the flags shared by every command
type options struct {
	configPath string
	catalog    string
	locale     string
	single     bool
	verbose    bool
	logFile    string
	preselect  []int64
}

var errNoCatalog = errors.New("no catalog configured: pass --catalog or set catalog in " + config.FileName)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "prodpick",
		Short: "Pick products from a catalog in the terminal",
		Long: `prodpick loads a product catalog, lets you narrow it by name and
select products. On enter the selected product ids are printed to stdout,
one per line.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPicker(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.FileName, "Path to the config file")
	flags.StringVarP(&opts.catalog, "catalog", "c", "", "Catalog file (.yaml, .yml or .json)")
	flags.StringVar(&opts.locale, "locale", "", "BCP 47 language tag used to match names")
	flags.BoolVar(&opts.single, "single", false, "Allow at most one selected product")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&opts.logFile, "log-file", logging.DefaultFile, "Log file path")
	rootCmd.Flags().Int64SliceVar(&opts.preselect, "preselect", nil, "Product ids selected when the picker opens")

	rootCmd.AddCommand(newFilterCmd(opts), newSelectCmd(), newInitCmd(opts))
	return rootCmd
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(opts *options, bus eventbus.EventBus) (*config.Config, error) {
	svc := config.NewConfigServiceWithBus(opts.configPath, bus)
	cfg, err := svc.Load()
	if err != nil {
		return nil, err
	}

	if opts.catalog != "" {
		cfg.Catalog = opts.catalog
	}
	if opts.locale != "" {
		cfg.Locale = opts.locale
	}
	if opts.single {
		cfg.SelectMode = config.SelectModeSingle
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadCatalog reads the configured catalog and builds its matcher
func loadCatalog(cfg *config.Config) ([]domain.Product, *catalog.Matcher, error) {
	if cfg.Catalog == "" {
		return nil, nil, errNoCatalog
	}
	matcher, err := catalog.NewMatcherForLocale(cfg.Locale)
	if err != nil {
		return nil, nil, err
	}
	products, err := catalog.LoadFile(cfg.Catalog)
	if err != nil {
		return nil, nil, err
	}
	return products, matcher, nil
}

func runPicker(ctx context.Context, opts *options, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger, err := logging.New(opts.logFile, opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	bus := eventbus.New(logger)
	defer bus.Close()
	defer logEvents(bus, logger)()

	cfg, err := loadConfig(opts, bus)
	if err != nil {
		return err
	}
	products, matcher, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	logger.Debug("matching names", zap.String("locale", matcher.Locale().String()))
	bus.Publish(eventbus.CatalogLoadedEvent{Path: cfg.Catalog, Products: len(products)})

	store := catalog.NewMemoryProductStore(products)
	initial, unknown := initialSelection(store, opts.preselect, cfg.IsSingleSelect())
	if len(unknown) > 0 {
		logger.Warn("ignoring preselected ids missing from the catalog", zap.Int64s("ids", unknown))
	}

	model := ui.NewModel(cfg, store, matcher, bus, initial, logger)
	// The picker draws on stderr so stdout only carries the result
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	model.SetProgram(p)

	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	unsubReload := bus.Subscribe(eventbus.EventCatalogReloaded, forward)
	unsubError := bus.Subscribe(eventbus.EventError, forward)
	defer unsubReload()
	defer unsubError()

	if cfg.Watch {
		watcher, err := catalog.NewWatcher(cfg.Catalog, store, bus, logger)
		if err != nil {
			return err
		}
		// Runs before bus.Close so the watcher never publishes to a closed bus
		defer watchCatalog(ctx, watcher, logger)()
	}

	logger.Info("starting UI")
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			logger.Info("interrupted")
			return nil
		}
		return fmt.Errorf("error running program: %w", err)
	}

	sel, confirmed := model.Result()
	logger.Info("UI exited", zap.Bool("confirmed", confirmed), zap.Int("selected", sel.Len()))
	if !confirmed {
		return nil
	}
	return printSelection(out, sel)
}

// watchCatalog runs w in the background. The returned function stops it
// and waits until it has exited.
func watchCatalog(ctx context.Context, w *catalog.Watcher, logger *zap.Logger) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := w.Start(ctx); err != nil {
			logger.Error("catalog watcher stopped", zap.Error(err))
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

// initialSelection seeds the picker with the ids the catalog knows and
// returns the rest. Single-select pickers keep the first known id.
func initialSelection(store catalog.ProductStore, ids []int64, single bool) (itemset.Selection[domain.ProductID], []int64) {
	var known []domain.ProductID
	var unknown []int64
	for _, id := range ids {
		if store.Has(domain.ProductID(id)) {
			known = append(known, domain.ProductID(id))
		} else {
			unknown = append(unknown, id)
		}
	}

	switch {
	case len(known) == 0:
		return itemset.Empty[domain.ProductID](), unknown
	case single:
		return itemset.Single(known[0]), unknown
	default:
		return itemset.Many(known...), unknown
	}
}

// logEvents records every domain event in the log and returns a function
// that stops it
func logEvents(bus eventbus.EventBus, logger *zap.Logger) func() {
	log := logger.Named("events")
	handler := func(e eventbus.DomainEvent) {
		switch event := e.(type) {
		case eventbus.CatalogLoadedEvent:
			log.Info("catalog loaded", zap.String("path", event.Path), zap.Int("products", event.Products))
		case eventbus.CatalogReloadedEvent:
			log.Info("catalog reloaded", zap.String("path", event.Path), zap.Int("products", len(event.Products)))
		case eventbus.SelectionChangedEvent:
			log.Debug("selection changed",
				zap.Stringers("added", event.Added),
				zap.Stringers("removed", event.Removed),
				zap.Int("total", event.Total))
		case eventbus.SelectionClearedEvent:
			log.Debug("selection cleared")
		case eventbus.FilterChangedEvent:
			log.Debug("filter changed", zap.String("query", event.Query), zap.Int("matches", event.MatchCount))
		case eventbus.ErrorEvent:
			log.Error(event.Message, zap.Error(event.Err))
		case eventbus.ConfigLoadedEvent:
			log.Info("config loaded", zap.String("catalog", event.Catalog), zap.String("locale", event.Locale))
		case eventbus.ConfigSavedEvent:
			log.Info("config saved")
		}
	}

	var unsubs []func()
	for _, t := range []eventbus.EventType{
		eventbus.EventCatalogLoaded,
		eventbus.EventCatalogReloaded,
		eventbus.EventSelectionChanged,
		eventbus.EventSelectionCleared,
		eventbus.EventFilterChanged,
		eventbus.EventError,
		eventbus.EventConfigLoaded,
		eventbus.EventConfigSaved,
	} {
		unsubs = append(unsubs, bus.Subscribe(t, handler))
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

func toProductIDs(ids []int64) []domain.ProductID {
	out := make([]domain.ProductID, len(ids))
	for i, id := range ids {
		out[i] = domain.ProductID(id)
	}
	return out
}

func printSelection(out io.Writer, sel itemset.Selection[domain.ProductID]) error {
	for _, id := range sel.IDs() {
		if _, err := fmt.Fprintln(out, id); err != nil {
			return err
		}
	}
	return nil
}
