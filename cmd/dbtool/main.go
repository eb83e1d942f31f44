// dbtool initializes the database schema and runs administrative
// maintenance. `dbtool -clear` wipes the entire query history, so it is kept
// out of the HTTP surface on purpose.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/shivam18213/distance-calculator/internal/adapters/repositories"
	"github.com/shivam18213/distance-calculator/internal/config"
	"github.com/shivam18213/distance-calculator/internal/platform/db"
	"github.com/shivam18213/distance-calculator/internal/ports"
)

func main() {
	clear := flag.Bool("clear", false, "delete ALL persisted queries after initializing the schema")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))

	var store ports.QueryStore
	var handle *sql.DB

	if databaseURL != "" {
		pg, err := db.OpenPostgres(databaseURL, config.GetInt("DB_MAX_OPEN_CONNS", 10))
		if err != nil {
			log.Fatal(err)
		}
		handle = pg

		log.Println("Initializing postgres schema...")
		if err := repositories.InitPostgresSchema(pg); err != nil {
			log.Fatalf("schema initialization failed: %v", err)
		}
		store = repositories.NewSQLQueryRepository(pg)
	} else {
		dbPath := config.Get("DB_PATH", "data/queries.db")

		lite, err := db.OpenSQLite(dbPath)
		if err != nil {
			log.Fatal(err)
		}
		handle = lite

		log.Println("Initializing sqlite schema...")
		if err := repositories.InitSchema(lite); err != nil {
			log.Fatalf("schema initialization failed: %v", err)
		}
		store = repositories.NewSqliteQueryRepository(lite)
	}
	defer handle.Close()

	log.Println("Schema ready.")

	if *clear {
		log.Println("Clearing query history (irreversible)...")
		deleted, err := store.ClearHistory(context.Background())
		if err != nil {
			log.Fatalf("clear history failed: %v", err)
		}
		log.Printf("Cleared %d queries.", deleted)
	}
}
