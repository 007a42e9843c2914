package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"warehouse-pricing/internal/analysis"
	"warehouse-pricing/internal/catalog"
	"warehouse-pricing/internal/model"
	"warehouse-pricing/internal/pricing"
)

// Demo:
// - Write a small synthetic catalog CSV (or ingest one passed via --data)
// - Sample it through the ingestion pipeline and print the snapshot
// - Run a pricing simulation for one product to show how models fit together
func main() {
	dataPath := flag.String("data", "", "Path to a catalog CSV (default: generate a synthetic one)")
	n := flag.Int("n", 12, "Number of simulation steps")
	outCSV := flag.String("out", "", "Optional path to write the trace CSV (e.g. results/trace.csv)")
	flag.Parse()

	path := *dataPath
	if path == "" {
		var err error
		path, err = writeSampleCatalog()
		if err != nil {
			panic(err)
		}
		fmt.Printf("Generated sample catalog: %s\n", path)
	}

	log := zap.NewNop()
	pipeline := catalog.NewPipeline(catalog.DefaultCapacity, pricing.DefaultSeed, log)
	records, totalSeen, err := pipeline.Ingest(path)
	if err != nil {
		panic(err)
	}

	snap := analysis.BuildSnapshot(records, totalSeen)
	fmt.Printf("Sampled %d of %d rows, %d priced\n", snap.TotalSampled, snap.TotalSeen, snap.PricedCount)
	for i, cc := range snap.CategoryCounts {
		fmt.Printf("  %d. %-24s %d items, avg $%.2f\n", i+1, cc.Category, cc.Count, snap.CategoryAvgPrice[cc.Category])
	}

	rec, ok := firstPriced(records)
	if !ok {
		panic("no priced products in catalog")
	}

	market := model.NewMarketState(rec)
	engine := pricing.NewEngine(model.DefaultSettings())
	result := engine.RunSimulation(rec, market, *n)

	fmt.Printf("\nSimulating %q over %d steps\n", rec.DisplayName(), *n)
	fmt.Printf("Start: price=$%.2f competitor=$%.2f inventory=%d elasticity=%.2f\n\n",
		market.CurrentPrice, market.CompetitorPrice, market.InventoryLevel, market.DemandElasticity)

	for _, act := range result.Actions {
		fmt.Println(formatStep(act))
	}

	if *outCSV != "" {
		if err := os.MkdirAll(filepath.Dir(*outCSV), 0o755); err != nil {
			panic(err)
		}
		if err := pricing.WriteTraceCSV(*outCSV, result.Actions); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	fmt.Printf("\nDone. Final price=$%.2f (%.2f%%)  Total reward=%.4f  avg=%.4f\n",
		result.FinalPrice, result.PriceChangePct(), result.TotalReward, result.AvgReward)
}

func formatStep(act model.PricingAction) string {
	return fmt.Sprintf("step %2d  %s  $%6.2f -> $%6.2f  reward=%7.4f (profit=%.4f comp=%.4f stab=%.4f inv=%.4f)",
		act.Step,
		act.Direction(),
		act.OldPrice,
		act.NewPrice,
		act.Reward,
		act.ProfitComponent,
		act.CompetitiveComponent,
		act.StabilityComponent,
		act.InventoryComponent,
	)
}

func firstPriced(records []model.CatalogRecord) (model.CatalogRecord, bool) {
	for _, rec := range records {
		if rec.Price > 0 {
			return rec, true
		}
	}
	return model.CatalogRecord{}, false
}

func writeSampleCatalog() (string, error) {
	rows := `sample_id,catalog_content,price,unit,value,image_link
0,"item_name: Colombian Dark Roast Coffee Beans 2lb bullet_point: whole bean, slow roasted product_description: Single origin beans roasted dark.",18.99,lb,2,
1,"item_name: Organic Chai Tea Bags 48ct bullet_point: caffeinated, organic product_description: Spiced black tea blend.",9.49,ct,48,
2,"item_name: Whole Milk Gallon bullet_point: vitamin D product_description: Pasteurized whole milk.",4.29,gal,1,
3,"item_name: Sparkling Water Variety Pack 24ct bullet_point: zero calories product_description: Lime lemon and berry flavors.",12.99,ct,24,
4,"item_name: Sourdough Bread Loaf bullet_point: fresh baked product_description: Naturally leavened.",5.49,loaf,1,
5,"item_name: Frozen Mixed Berries 3lb bullet_point: no sugar added product_description: Strawberries blueberries and raspberries.",11.79,lb,3,
6,"item_name: Roasted Almonds 16oz bullet_point: sea salt product_description: Dry roasted daily.",8.99,oz,16,
7,"item_name: Paper Towels 12 Rolls bullet_point: 2-ply product_description: Absorbent household towels.",21.49,ct,12,
8,"item_name: Dish Soap Lemon 28oz bullet_point: grease cutting product_description: Concentrated formula.",3.79,oz,28,
9,"item_name: Dark Chocolate Bar 3.5oz bullet_point: 70 percent cacao product_description: Single origin chocolate.",2.99,oz,3.5,
`
	path := filepath.Join(os.TempDir(), "demo_catalog.csv")
	if err := os.WriteFile(path, []byte(rows), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
