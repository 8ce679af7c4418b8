package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/limaJavier/courseplanner/pkg/config"
	"github.com/limaJavier/courseplanner/pkg/logger"
	"github.com/limaJavier/courseplanner/pkg/model"
	"github.com/limaJavier/courseplanner/pkg/planner"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Exit codes read by the benchmark
const (
	exitFound   = 10
	exitNothing = 20
)

var (
	validModes   = []string{"combinations", "priority", "place"}
	validFormats = []string{"json", "csv"}
)

func main() {
	// Define arguments
	catalogPtr := flag.String("catalog", "", "Path to the catalog json file")
	modePtr := flag.String("mode", "combinations", `What to compute. Allowed values are:
- "combinations" (conflict-free picks of one section per course code or key group, fewest days first),
- "priority" (greedy and skip alternatives of the priority list) and
- "place" (places the priority list into the weekly grid and prints its cells), where "combinations" is the default`)
	codesPtr := flag.String("codes", "", "Comma separated course codes whose sections form the groups of the combinations mode")
	groupsPtr := flag.String("groups", "", "Key groups for the combinations mode, separated by \"|\" with comma separated keys; overrides -codes")
	priorityPtr := flag.String("priority", "", "Comma separated course keys, highest priority first")
	evictPtr := flag.Bool("evict", false, "Confirm the eviction of conflicting courses of equal or lower priority in the place mode")
	formatPtr := flag.String("format", "json", "Output format. Allowed values are: \"json\" and \"csv\", where \"json\" is the default")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	configPathPtr := flag.String("config", "", "Path to an optional config file")
	flag.Parse()
	mode := strings.ToLower(*modePtr)
	format := strings.ToLower(*formatPtr)
	catalogPath := *catalogPtr
	codes := splitList(*codesPtr, ",")
	groups := lo.Map(splitList(*groupsPtr, "|"), func(group string, _ int) []string { return splitList(group, ",") })
	priority := splitList(*priorityPtr, ",")

	// Validate arguments
	if !slices.Contains(validModes, mode) {
		log.Fatalf("%v is not a valid mode", mode)
	} else if !slices.Contains(validFormats, format) {
		log.Fatalf("%v is not a valid format", format)
	} else if catalogPath == "" {
		log.Fatal("a catalog file must be specified")
	} else if mode == "combinations" && len(codes) == 0 && len(groups) == 0 {
		log.Fatal("the combinations mode needs -codes or -groups")
	} else if mode != "combinations" && len(priority) == 0 {
		log.Fatalf("the %v mode needs -priority", mode)
	}

	// Initialize ambient stack
	cfg, err := config.Load(*configPathPtr)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer zapLogger.Sync()

	grid, err := cfg.PlacementGrid()
	if err != nil {
		log.Fatalf("invalid grid: %v", err)
	}

	// Extract input
	catalog, err := model.CatalogFromJson(catalogPath, grid, zapLogger)
	if err != nil {
		log.Fatalf("cannot parse catalog file: %v", err)
	}

	options := planner.Options{
		GapThresholdMinutes: cfg.Search.GapThresholdMinutes,
		MaxSkip:             cfg.Search.MaxSkip,
		MaxCombinations:     cfg.Search.MaxCombinations,
	}
	session := planner.NewSession(catalog, options, zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	found := false
	switch mode {
	case "combinations":
		result, err := session.Search(ctx, planner.SearchRequest{Groups: groups, Codes: codes})
		if err != nil {
			log.Fatalf("an error occurred during the combination search: %v", err)
		}
		found = len(result.Combinations) > 0
		if err := writeRows(combinationRows(result.Combinations), format, *outFilePathPtr); err != nil {
			log.Fatal(err)
		}
	case "priority":
		result, err := session.Search(ctx, planner.SearchRequest{Priority: priority})
		if err != nil {
			log.Fatalf("an error occurred during the priority scheduling: %v", err)
		}
		found = len(result.Schedules) > 0
		if err := writeRows(scheduleRows(result.Schedules), format, *outFilePathPtr); err != nil {
			log.Fatal(err)
		}
	case "place":
		if err := session.Apply(priority, priority, *evictPtr); err != nil {
			zapLogger.Warn("some courses were not placed", zap.Error(err))
		}
		found = len(session.PlacedKeys()) > 0
		if err := writeRows(cellRows(session.Snapshot(), grid), format, *outFilePathPtr); err != nil {
			log.Fatal(err)
		}
	}

	zapLogger.Sync()
	if !found {
		os.Exit(exitNothing)
	}
	os.Exit(exitFound)
}

func splitList(value, separator string) []string {
	return lo.Compact(lo.Map(strings.Split(value, separator), func(item string, _ int) string {
		return strings.TrimSpace(item)
	}))
}
