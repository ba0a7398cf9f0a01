package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"tramite-system/pkg/config"
)

// Uso: go run ./cmd/migrate [-dir migrations] up|down|status|version
func main() {
	dir := flag.String("dir", "migrations", "directorio con las migraciones SQL")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	cfg := config.New()

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("no se pudo abrir la conexión: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("dialecto no válido: %v", err)
	}

	if err := goose.RunContext(context.Background(), command, db, *dir, flag.Args()[1:]...); err != nil {
		log.Fatalf("migración fallida (%s): %v", command, err)
	}
}
