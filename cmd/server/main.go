package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"github.com/shivam18213/distance-calculator/internal/adapters/cache"
	"github.com/shivam18213/distance-calculator/internal/adapters/geocode"
	"github.com/shivam18213/distance-calculator/internal/adapters/repositories"
	"github.com/shivam18213/distance-calculator/internal/api"
	"github.com/shivam18213/distance-calculator/internal/config"
	"github.com/shivam18213/distance-calculator/internal/platform/db"
	"github.com/shivam18213/distance-calculator/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, Nominatim, Redis) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	dbPath := config.Get("DB_PATH", "data/queries.db")
	baseURL := config.Get("NOMINATIM_BASE_URL", geocode.DefaultBaseURL)
	cacheMode := config.Get("GEOCODE_CACHE", "sqlite")

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))

	var store ports.QueryStore
	var handle *sql.DB

	if databaseURL != "" {
		// Shared Postgres deployment; schema is managed via cmd/dbtool.
		pg, err := db.OpenPostgres(databaseURL, config.GetInt("DB_MAX_OPEN_CONNS", 10))
		if err != nil {
			log.Fatal(err)
		}
		handle = pg
		store = repositories.NewSQLQueryRepository(pg)
	} else {
		lite, err := db.OpenSQLite(dbPath)
		if err != nil {
			log.Fatal(err)
		}
		if err := repositories.InitSchema(lite); err != nil {
			log.Fatal(err)
		}
		handle = lite
		store = repositories.NewSqliteQueryRepository(lite)
	}
	defer handle.Close()

	geocodeCache := buildGeocodeCache(cacheMode, databaseURL != "", handle)
	geocoder := geocode.NewNominatim(baseURL, geocodeCache)

	router := api.NewRouter(store, geocoder)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Two sequential geocoding calls at 10s each must fit.
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// buildGeocodeCache picks the geocode cache adapter. The cache is best-effort
// everywhere it is used, so "off" is always a safe choice.
func buildGeocodeCache(mode string, postgres bool, handle *sql.DB) ports.GeocodeCache {
	switch mode {
	case "off":
		return nil
	case "redis":
		addr := config.Get("REDIS_ADDR", "localhost:6379")
		ttl := config.GetDuration("GEOCODE_CACHE_TTL", 24*time.Hour)
		client := redis.NewClient(&redis.Options{Addr: addr})
		return cache.NewRedisGeocodeCache(client, ttl)
	case "sqlite":
		if postgres {
			return cache.NewSQLGeocodeCache(handle)
		}
		return cache.NewSqliteGeocodeCache(handle)
	default:
		log.Printf("unknown GEOCODE_CACHE=%q, geocode caching disabled", mode)
		return nil
	}
}
