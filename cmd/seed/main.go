package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/bq-cafe/pos-api/internal/config"
	"github.com/bq-cafe/pos-api/internal/database"
	"github.com/bq-cafe/pos-api/internal/logger"
)

type seedItem struct {
	name  string
	price string
}

type seedGroup struct {
	name  string
	items []seedItem
}

var (
	seedAreas = map[string][]string{
		"Indoor":  {"T1", "T2", "T3", "T4"},
		"Outdoor": {"O1", "O2"},
	}
	seedAreaOrder = []string{"Indoor", "Outdoor"}

	seedMenu = []seedGroup{
		{name: "Coffee", items: []seedItem{
			{"Espresso", "20000"},
			{"Milk Coffee", "25000"},
			{"Cold Brew", "30000"},
		}},
		{name: "Tea", items: []seedItem{
			{"Green Tea", "15000"},
			{"Peach Tea", "22000"},
		}},
		{name: "Snacks", items: []seedItem{
			{"Croissant", "18000"},
			{"Banana Bread", "16000"},
		}},
	}
)

func main() {
	force := flag.Bool("force", false, "Seed even when areas already exist")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	lg := logger.Setup(cfg)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		lg.Fatal().Err(err).Msg("ping database")
	}

	if cfg.AutoMigrate {
		if err := database.Migrate(cfg.DatabaseURL); err != nil {
			lg.Fatal().Err(err).Msg("migrate")
		}
	}

	queries := database.New(pool)
	existing, err := queries.ListAreas(ctx)
	if err != nil {
		lg.Fatal().Err(err).Msg("list areas")
	}
	if len(existing) > 0 && !*force {
		lg.Info().Int("areas", len(existing)).Msg("database already seeded, skipping")
		return
	}

	// Seed in a transaction so a failure leaves nothing behind.
	tx, err := pool.Begin(ctx)
	if err != nil {
		lg.Fatal().Err(err).Msg("begin transaction")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	qtx := queries.WithTx(tx)
	tables, err := seedSeating(ctx, qtx)
	if err != nil {
		lg.Fatal().Err(err).Msg("seed seating")
	}
	items, err := seedMenuItems(ctx, qtx)
	if err != nil {
		lg.Fatal().Err(err).Msg("seed menu")
	}

	if err := tx.Commit(ctx); err != nil {
		lg.Fatal().Err(err).Msg("commit")
	}

	lg.Info().Int("tables", tables).Int("menu_items", items).Msg("seed completed")
}

func seedSeating(ctx context.Context, q *database.Queries) (int, error) {
	n := 0
	for i, name := range seedAreaOrder {
		area, err := q.CreateArea(ctx, database.CreateAreaParams{Name: name, Sort: int32(i)})
		if err != nil {
			return 0, fmt.Errorf("insert area %s: %w", name, err)
		}
		for _, t := range seedAreas[name] {
			if _, err := q.CreateTable(ctx, database.CreateTableParams{AreaID: area.ID, Name: t}); err != nil {
				return 0, fmt.Errorf("insert table %s: %w", t, err)
			}
			n++
		}
	}
	return n, nil
}

func seedMenuItems(ctx context.Context, q *database.Queries) (int, error) {
	n := 0
	for i, g := range seedMenu {
		group, err := q.CreateMenuGroup(ctx, database.CreateMenuGroupParams{Name: g.name, Sort: int32(i)})
		if err != nil {
			return 0, fmt.Errorf("insert menu group %s: %w", g.name, err)
		}
		for j, it := range g.items {
			var price pgtype.Numeric
			if err := price.Scan(it.price); err != nil {
				return 0, fmt.Errorf("parse price %s: %w", it.price, err)
			}
			_, err := q.CreateMenuItem(ctx, database.CreateMenuItemParams{
				GroupID: group.ID,
				Name:    it.name,
				Price:   price,
				Sort:    int32(j),
			})
			if err != nil {
				return 0, fmt.Errorf("insert menu item %s: %w", it.name, err)
			}
			n++
		}
	}
	return n, nil
}
