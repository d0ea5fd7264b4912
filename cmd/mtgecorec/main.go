package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattgraham93/mtgecorec-sub000/internal/charts"
	"github.com/mattgraham93/mtgecorec-sub000/internal/config"
	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/cards/importer"
	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/cards/refresh"
	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/recommendations"
	"github.com/mattgraham93/mtgecorec-sub000/internal/mtg/scoring"
	"github.com/mattgraham93/mtgecorec-sub000/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	switch os.Args[1] {
	case "import":
		runImportCommand()
	case "import-combos":
		runImportCombosCommand()
	case "recommend":
		runRecommendCommand()
	case "watch":
		runWatchCommand()
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("mtgecorec - Commander deck recommendations")
	fmt.Println()
	fmt.Println("Usage: mtgecorec <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  import        - Import the Scryfall oracle-cards corpus")
	fmt.Println("  import-combos - Import a combo-card name list")
	fmt.Println("  recommend     - Recommend cards for a commander")
	fmt.Println("  watch         - Reimport when a local bulk file changes")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  mtgecorec import")
	fmt.Println("  mtgecorec import -bulk-file oracle-cards.json")
	fmt.Println("  mtgecorec import-combos -file combos.txt -infinite")
	fmt.Println("  mtgecorec recommend -lead \"Meren of Clan Nel Toth\" -budget 5")
	fmt.Println("  mtgecorec recommend -lead \"Atraxa\" -report deck.html")
	fmt.Println()
}

// setup loads configuration, configures logging, and opens the store.
func setup(debugMode bool) (*config.Config, *storage.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	level := slog.LevelInfo
	if debugMode || cfg.App.DebugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	dbConfig := storage.DefaultConfig(cfg.Database.Path)
	dbConfig.AutoMigrate = cfg.Database.AutoMigrate
	db, err := storage.Open(dbConfig)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening database: %w", err)
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			slog.Warn("closing database", "error", err)
		}
	}
	return cfg, storage.NewStore(db, logger), cleanup, nil
}

func runImportCommand() {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	bulkFile := fs.String("bulk-file", "", "Import from a local bulk JSON file instead of downloading")
	debugMode := fs.Bool("d", false, "Enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, store, cleanup, err := setup(*debugMode)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer cleanup()

	ctx := signalContext()
	imp := importer.New(nil, store, slog.Default())

	path := *bulkFile
	if path == "" {
		path = cfg.Scryfall.BulkFile
	}

	var count int
	if path != "" {
		count, err = imp.ImportFile(ctx, path)
	} else {
		count, err = imp.ImportBulk(ctx)
	}
	if err != nil {
		log.Fatalf("Error importing cards: %v", err)
	}
	fmt.Printf("Imported %d cards\n", count)
}

func runImportCombosCommand() {
	fs := flag.NewFlagSet("import-combos", flag.ExitOnError)
	file := fs.String("file", "", "Newline-delimited file of combo card names (required)")
	infinite := fs.Bool("infinite", false, "Mark the names as infinite-combo pieces")
	debugMode := fs.Bool("d", false, "Enable debug logging")
	_ = fs.Parse(os.Args[2:])

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		fs.Usage()
		os.Exit(1)
	}

	names, err := readLines(*file)
	if err != nil {
		log.Fatalf("Error reading combo file: %v", err)
	}

	_, store, cleanup, err := setup(*debugMode)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer cleanup()

	if err := store.SaveComboCards(signalContext(), names, *infinite); err != nil {
		log.Fatalf("Error saving combo cards: %v", err)
	}
	fmt.Printf("Imported %d combo cards\n", len(names))
}

func runRecommendCommand() {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	lead := fs.String("lead", "", "Commander name (required)")
	deckFile := fs.String("deck", "", "Newline-delimited file of cards already in the deck")
	budget := fs.Float64("budget", 0, "Per-card USD budget limit (0 = no limit)")
	mechanics := fs.String("mechanics", "", "Preferred mechanics, e.g. \"sacrifice, tokens\"")
	suggestionsFile := fs.String("suggestions", "", "Newline-delimited file of external suggestions")
	excludeFile := fs.String("exclude", "", "Newline-delimited file of cards never to recommend")
	reportPath := fs.String("report", "", "Write an HTML deck report to this path")
	limit := fs.Int("limit", 0, "Print at most this many recommendations (0 = all)")
	debugMode := fs.Bool("d", false, "Enable debug logging")
	_ = fs.Parse(os.Args[2:])

	if *lead == "" {
		fmt.Fprintln(os.Stderr, "Error: -lead is required")
		fs.Usage()
		os.Exit(1)
	}

	cfg, store, cleanup, err := setup(*debugMode)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer cleanup()

	ctx := signalContext()

	req := &recommendations.Request{
		LeadName:           *lead,
		PreferredMechanics: *mechanics,
	}
	if *budget > 0 {
		req.BudgetLimit = budget
	}
	if req.CurrentDeck, err = readOptionalLines(*deckFile); err != nil {
		log.Fatalf("Error reading deck file: %v", err)
	}
	if req.Suggestions, err = readOptionalLines(*suggestionsFile); err != nil {
		log.Fatalf("Error reading suggestions file: %v", err)
	}
	if req.ExcludeCards, err = readOptionalLines(*excludeFile); err != nil {
		log.Fatalf("Error reading exclude file: %v", err)
	}

	known, infinite, err := store.ComboNames(ctx)
	if err != nil {
		log.Fatalf("Error loading combo cards: %v", err)
	}

	engine := recommendations.NewEngine(recommendations.Config{
		Corpus: store,
		Leads:  store,
		Scorer: scoring.NewScorer(scoring.Config{
			Combos:            scoring.NewComboRegistry(known, infinite),
			ParallelThreshold: cfg.Recommender.ParallelThreshold,
			MaxWorkers:        cfg.Recommender.MaxWorkers,
		}),
		FuzzyCutoff: cfg.Recommender.FuzzyCutoff,
	})

	result, err := engine.Recommend(ctx, req)
	if err != nil {
		log.Fatalf("Error generating recommendations: %v", err)
	}

	printResult(result, *limit)

	if *reportPath != "" {
		if err := charts.RenderDeckReport(result, charts.DefaultChartConfig(), *reportPath); err != nil {
			log.Fatalf("Error rendering deck report: %v", err)
		}
		fmt.Printf("\nDeck report written to %s\n", *reportPath)
	}
}

func runWatchCommand() {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	bulkFile := fs.String("bulk-file", "", "Local bulk JSON file to watch")
	debugMode := fs.Bool("d", false, "Enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, store, cleanup, err := setup(*debugMode)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer cleanup()

	path := *bulkFile
	if path == "" {
		path = cfg.Scryfall.BulkFile
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: -bulk-file or scryfall.bulk_file config is required")
		os.Exit(1)
	}

	imp := importer.New(nil, store, slog.Default())
	watcher := refresh.NewWatcher(path, imp, slog.Default())

	ctx := signalContext()
	if err := watcher.Start(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Error watching bulk file: %v", err)
	}
}

func printResult(result *recommendations.Result, limit int) {
	fmt.Printf("Recommendations for %s (%s)\n", result.Lead.Name, result.Lead.Identity)
	fmt.Println()

	shown := result.Recommendations
	if limit > 0 && limit < len(shown) {
		shown = shown[:limit]
	}

	for i, rec := range shown {
		suggested := ""
		if rec.Suggested {
			suggested = " [suggested]"
		}
		fmt.Printf("%3d. %-40s %6.1f  %-10s %s%s\n",
			i+1, rec.Name, rec.Score, rec.Category, strings.Join(rec.Reasons, "; "), suggested)
	}

	if len(result.ManaBase) > 0 {
		fmt.Println()
		fmt.Println("Mana base:")
		for _, rec := range result.ManaBase {
			fmt.Printf("     %-40s %6.1f  %-10s %s\n",
				rec.Name, rec.Score, rec.Category, strings.Join(rec.Reasons, "; "))
		}
	}

	fmt.Println()
	fmt.Println("Category breakdown:")
	for _, category := range []string{
		recommendations.CategoryLands, recommendations.CategoryRamp,
		recommendations.CategoryRemoval, recommendations.CategoryDraw,
		recommendations.CategoryProtection, recommendations.CategoryFinishers,
		recommendations.CategoryUtility, recommendations.CategorySynergy,
	} {
		if count := result.CategoryBreakdown[category]; count > 0 {
			fmt.Printf("  %-12s %d\n", category, count)
		}
	}

	if result.TotalEstimatedCost != nil {
		fmt.Printf("\nEstimated cost: $%.2f\n", *result.TotalEstimatedCost)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()
	return ctx
}

// readLines reads a newline-delimited file, skipping blanks and comments.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

func readOptionalLines(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	return readLines(path)
}
