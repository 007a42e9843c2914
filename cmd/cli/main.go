package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"warehouse-pricing/internal/catalog"
	"warehouse-pricing/internal/config"
	"warehouse-pricing/internal/model"
	"warehouse-pricing/internal/pricing"
	"warehouse-pricing/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "ingest":
		cmdIngest(os.Args[2:])
	case "categories":
		cmdCategories(os.Args[2:])
	case "suggest":
		cmdSuggest(os.Args[2:])
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "history":
		cmdHistory(os.Args[2:])
	case "clear-cache":
		cmdClearCache(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli ingest --source data/catalog.csv [--refresh]")
	fmt.Println("  cli categories --source data/catalog.csv")
	fmt.Println("  cli suggest --source data/catalog.csv --id 42")
	fmt.Println("  cli simulate --source data/catalog.csv --id 42 --steps 30 [--out results/trace.csv]")
	fmt.Println("  cli history [--limit 20] [--clear]")
	fmt.Println("  cli clear-cache")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - ingest samples the source down to the configured capacity and caches the snapshot")
	fmt.Println("  - simulate runs the multi-step pricing rollout and appends it to history")
	fmt.Println("  - --config and WAREHOUSE_* env vars control data/state directories")
}

// app bundles the pieces every subcommand needs.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	loader *catalog.Loader
}

func newApp(cfgPath string) *app {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatal(err)
	}
	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fatal(err)
	}
	pipeline := catalog.NewPipeline(cfg.SampleCapacity, cfg.EngineSeed, log)
	cache := catalog.NewSnapshotCache(cfg.CacheDir(), log)
	return &app{
		cfg:    cfg,
		log:    log,
		loader: catalog.NewLoader(pipeline, cache, log),
	}
}

// resolveSource picks the first source in the data dir when none is given,
// and looks bare names up there.
func (a *app) resolveSource(source string) string {
	if source == "" {
		sources, err := catalog.ListSources(a.cfg.DataDir)
		if err != nil {
			fatal(err)
		}
		if len(sources) == 0 {
			fatal(fmt.Errorf("no catalog sources in %s (use --source)", a.cfg.DataDir))
		}
		return sources[0].Path
	}
	if !strings.ContainsRune(source, filepath.Separator) {
		if _, err := os.Stat(source); os.IsNotExist(err) {
			return filepath.Join(a.cfg.DataDir, source)
		}
	}
	return source
}

func (a *app) snapshot(source string, refresh bool) *model.Snapshot {
	path := a.resolveSource(source)
	var (
		snap *model.Snapshot
		err  error
	)
	if refresh {
		snap, err = a.loader.Reload(path)
	} else {
		snap, err = a.loader.Load(path)
	}
	if err != nil {
		fatal(err)
	}
	return snap
}

// product resolves a sampled product and rejects ones the engine must not
// see (no positive price to simulate from).
func (a *app) product(snap *model.Snapshot, id int) model.CatalogRecord {
	rec, ok := snap.FindRecord(id)
	if !ok {
		fatal(fmt.Errorf("no sampled product with id %d", id))
	}
	if rec.Price <= 0 {
		fatal(fmt.Errorf("product %d has no positive price to simulate from", id))
	}
	return rec
}

func cmdIngest(args []string) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to config file")
	source := fs.String("source", "", "Catalog CSV (default: first source in data dir)")
	refresh := fs.Bool("refresh", false, "Bypass the snapshot cache")
	_ = fs.Parse(args)

	a := newApp(*cfgPath)
	snap := a.snapshot(*source, *refresh)

	fmt.Printf("Rows seen:    %d\n", snap.TotalSeen)
	fmt.Printf("Rows sampled: %d\n", snap.TotalSampled)
	fmt.Printf("Priced:       %d (zero-price: %d)\n", snap.PricedCount, snap.ZeroPriceCount)
	if snap.PricedCount > 0 {
		fmt.Printf("Price:        avg=$%.2f median=$%.2f min=$%.2f max=$%.2f std=$%.2f\n",
			snap.AvgPrice, snap.MedianPrice, snap.MinPrice, snap.MaxPrice, snap.StdPrice)
	}
	fmt.Printf("Categories:   %d\n", len(snap.CategoryCounts))
}

func cmdCategories(args []string) {
	fs := flag.NewFlagSet("categories", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to config file")
	source := fs.String("source", "", "Catalog CSV (default: first source in data dir)")
	_ = fs.Parse(args)

	a := newApp(*cfgPath)
	snap := a.snapshot(*source, false)

	fmt.Printf("%-4s %-24s %-8s %-10s %-10s %-10s\n", "rank", "category", "count", "avg$", "min$", "max$")
	for i, cc := range snap.CategoryCounts {
		fmt.Printf("%-4d %-24s %-8d %-10.2f %-10.2f %-10.2f\n",
			i+1,
			cc.Category,
			cc.Count,
			snap.CategoryAvgPrice[cc.Category],
			snap.CategoryMinPrice[cc.Category],
			snap.CategoryMaxPrice[cc.Category],
		)
	}
}

func cmdSuggest(args []string) {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to config file")
	source := fs.String("source", "", "Catalog CSV (default: first source in data dir)")
	id := fs.Int("id", -1, "Product sample id")
	seed := fs.Int64("seed", -1, "Market generation seed (-1 = derive from product id)")
	_ = fs.Parse(args)

	if *id < 0 {
		fatal(fmt.Errorf("--id is required"))
	}

	a := newApp(*cfgPath)
	snap := a.snapshot(*source, false)
	rec := a.product(snap, *id)

	market := model.NewMarketState(rec)
	if *seed >= 0 {
		market = model.NewMarketStateSeeded(rec, *seed)
	}

	settings := config.LoadSettings(a.cfg.SettingsPath())
	engine := pricing.NewEngineSeeded(settings, a.cfg.EngineSeed)
	price := engine.SuggestPrice(rec, market)
	b := pricing.Reward(market.CurrentPrice, price, market, settings)

	fmt.Printf("Product:    %s\n", rec.DisplayName())
	fmt.Printf("Current:    $%.2f  Competitor: $%.2f  Inventory: %d\n",
		market.CurrentPrice, market.CompetitorPrice, market.InventoryLevel)
	fmt.Printf("Suggested:  $%.2f\n", price)
	fmt.Printf("Reward:     total=%.4f profit=%.4f competitive=%.4f stability=%.4f inventory=%.4f\n",
		b.Total, b.Profit, b.Competitive, b.Stability, b.Inventory)
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to config file")
	source := fs.String("source", "", "Catalog CSV (default: first source in data dir)")
	id := fs.Int("id", -1, "Product sample id")
	steps := fs.Int("steps", 0, "Simulation steps (0 = settings default, clamped to [5,200])")
	seed := fs.Int64("seed", -1, "Market generation seed (-1 = derive from product id)")
	outPath := fs.String("out", "", "Optional path to write the trace CSV")
	_ = fs.Parse(args)

	if *id < 0 {
		fatal(fmt.Errorf("--id is required"))
	}

	a := newApp(*cfgPath)
	snap := a.snapshot(*source, false)
	rec := a.product(snap, *id)

	market := model.NewMarketState(rec)
	if *seed >= 0 {
		market = model.NewMarketStateSeeded(rec, *seed)
	}

	settings := config.LoadSettings(a.cfg.SettingsPath())
	n := *steps
	if n == 0 {
		n = settings.DefaultSteps
	}
	n = clampSteps(n)

	engine := pricing.NewEngineSeeded(settings, a.cfg.EngineSeed)
	result := engine.RunSimulation(rec, market, n)

	fmt.Printf("%-5s %-10s %-10s %-8s %-10s\n", "step", "old$", "new$", "dir", "reward")
	for _, act := range result.Actions {
		fmt.Printf("%-5d %-10.2f %-10.2f %-8s %-10.4f\n",
			act.Step, act.OldPrice, act.NewPrice, act.Direction(), act.Reward)
	}
	fmt.Printf("\nTotal reward=%.4f avg=%.4f\n", result.TotalReward, result.AvgReward)
	fmt.Printf("Price: initial=$%.2f final=$%.2f (%.2f%%) min=$%.2f max=$%.2f\n",
		result.InitialPrice, result.FinalPrice, result.PriceChangePct(), result.MinPrice, result.MaxPrice)

	appendHistory(a, result)

	if *outPath != "" {
		if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
			fatal(err)
		}
		if err := pricing.WriteTraceCSV(*outPath, result.Actions); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote %d rows to %s\n", len(result.Actions), *outPath)
	}
}

func appendHistory(a *app, result model.SimulationResult) {
	if err := os.MkdirAll(a.cfg.StateDir, 0o755); err != nil {
		a.log.Warn("failed to create state dir", zap.Error(err))
		return
	}
	history, err := store.NewHistory(a.cfg.HistoryPath(), a.log)
	if err != nil {
		a.log.Warn("failed to open history store", zap.Error(err))
		return
	}
	defer history.Close()
	if _, err := history.Append(context.Background(), result); err != nil {
		a.log.Warn("failed to persist simulation", zap.Error(err))
	}
}

func cmdHistory(args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to config file")
	limit := fs.Int("limit", 20, "Max entries to show")
	clear := fs.Bool("clear", false, "Delete all history")
	_ = fs.Parse(args)

	a := newApp(*cfgPath)
	history, err := store.NewHistory(a.cfg.HistoryPath(), a.log)
	if err != nil {
		fatal(err)
	}
	defer history.Close()

	ctx := context.Background()
	if *clear {
		if err := history.Clear(ctx); err != nil {
			fatal(err)
		}
		fmt.Println("History cleared.")
		return
	}

	entries, err := history.List(ctx, *limit)
	if err != nil {
		fatal(err)
	}
	if len(entries) == 0 {
		fmt.Println("No simulations recorded yet.")
		return
	}
	fmt.Printf("%-20s %-40s %-6s %-10s %-10s %-10s\n", "when", "product", "steps", "reward", "initial$", "final$")
	for _, e := range entries {
		fmt.Printf("%-20s %-40s %-6d %-10.4f %-10.2f %-10.2f\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			truncate(e.ProductName, 40),
			e.Steps,
			e.TotalReward,
			e.InitialPrice,
			e.FinalPrice,
		)
	}
}

func cmdClearCache(args []string) {
	fs := flag.NewFlagSet("clear-cache", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to config file")
	_ = fs.Parse(args)

	a := newApp(*cfgPath)
	if err := a.loader.ClearCache(); err != nil {
		fatal(err)
	}
	fmt.Println("Snapshot cache cleared.")
}

func clampSteps(n int) int {
	if n < 5 {
		return 5
	}
	if n > 200 {
		return 200
	}
	return n
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
