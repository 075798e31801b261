package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"trip-distance-service/internal/adapters/cache"
	"trip-distance-service/internal/adapters/distance"
	"trip-distance-service/internal/adapters/spreadsheet"
	"trip-distance-service/internal/config"
	"trip-distance-service/internal/platform/db"
	"trip-distance-service/internal/ports"
	"trip-distance-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root. It wires the spreadsheet,
// cache and Maps adapters behind ports and runs the batch once.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	outPath := flag.String("out", "distances_output.xlsx", "path for the augmented workbook")
	keyFlag := flag.String("key", "", "Google Maps API key (overrides GOOGLE_MAPS_API_KEY)")
	flag.Parse()

	inputPath := flag.Arg(0)
	if inputPath == "" {
		inputPath = "input_locations.xlsx"
	}

	apiKey := *keyFlag
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	}
	if strings.TrimSpace(apiKey) == "" {
		log.Fatal("GOOGLE_MAPS_API_KEY is required")
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	distanceCache, geocodeCache, closeCaches := openCaches(ctx, cfg)
	defer closeCaches()

	provider, err := distance.NewGoogleMapsProvider(apiKey, distance.Options{
		BaseURL: cfg.MapsBaseURL,
		Retry: distance.Policy{
			MaxAttempts: cfg.RetryMaxAttempts,
			BaseDelay:   cfg.RetryBaseDelay,
			Multiplier:  cfg.RetryMultiplier,
		},
		DistanceCache: distanceCache,
		GeocodeCache:  geocodeCache,
	})
	if err != nil {
		log.Fatal(err)
	}

	processor, err := services.NewTripProcessor(provider, provider, cfg.DefaultOrigin, cfg.Pause)
	if err != nil {
		log.Fatal(err)
	}

	workbook, err := spreadsheet.Open(inputPath)
	if err != nil {
		log.Fatal(err)
	}
	defer workbook.Close()

	trips, skipped := workbook.ReadTrips()
	for _, s := range skipped {
		log.Printf("row=%d skipped: %s", s.Row, s.Reason)
	}
	log.Printf("loaded workbook=%s trips=%d skipped=%d", inputPath, len(trips), len(skipped))

	rows, summary, runErr := processor.ProcessAll(ctx, trips)
	summary.RecordSkipped(len(skipped))

	// Write whatever was produced, even on an aborted run.
	if err := workbook.WriteResults(rows); err != nil {
		log.Fatal(err)
	}
	if err := workbook.MarkSkipped(skipped); err != nil {
		log.Fatal(err)
	}
	if err := workbook.SaveAs(*outPath); err != nil {
		log.Fatal(err)
	}

	summary.Log()
	log.Printf("wrote workbook=%s rows=%d", *outPath, len(rows))

	if runErr != nil {
		log.Fatalf("run aborted: %v", runErr)
	}
}

// openCaches selects the cache backend: a configured DATABASE_URL wins,
// then REDIS_ADDR, then the in-process default. A configured backend
// that cannot be reached is a setup failure, not a silent fallback.
func openCaches(ctx context.Context, cfg config.Config) (ports.DistanceCache, ports.GeocodeCache, func()) {
	if cfg.DatabaseURL != "" {
		sqlDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("using postgres response cache")
		return cache.NewSQLDistanceCache(sqlDB), cache.NewSQLGeocodeCache(sqlDB), func() { sqlDB.Close() }
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			log.Fatalf("redis %s unreachable: %v", cfg.RedisAddr, err)
		}

		log.Println("using redis response cache")
		return cache.NewRedisDistanceCache(client, cfg.CacheTTL),
			cache.NewRedisGeocodeCache(client, cfg.CacheTTL),
			func() { client.Close() }
	}

	return cache.NewMemoryDistanceCache(), cache.NewMemoryGeocodeCache(), func() {}
}
