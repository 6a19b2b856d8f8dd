package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/procura/notice-harvester/internal/db"
	"github.com/procura/notice-harvester/internal/ingest"
	"github.com/schollz/progressbar/v3"
)

func main() {
	month := flag.String("month", "", "publication month to harvest, format YYYY-MM")
	archive := flag.String("archive", "", "process an already-downloaded archive instead of fetching")
	configPath := flag.String("config", "", "path to a harvester config file (optional)")
	useDB := flag.Bool("db", false, "also upsert extracted notices into Postgres")
	flag.Parse()

	if *month == "" && *archive == "" {
		log.Fatal("Please provide either -month YYYY-MM or -archive path/to/file.zip")
	}
	if *month != "" && !ingest.ValidMonth(*month) {
		log.Fatalf("Invalid month %q, expected YYYY-MM", *month)
	}

	cfg, err := ingest.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	var store *db.Store
	if *useDB {
		pool, err := db.Connect(ctx)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer pool.Close()

		if err := db.ApplyMigrations(ctx, pool); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		store = db.NewStore(pool)
	}

	pipeline := ingest.NewPipeline(cfg, store)

	var bar *progressbar.ProgressBar
	pipeline.Progress = func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Extracting notices"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "=",
					SaucerHead:    ">",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
			)
		}
		bar.Add(1)
	}

	var stats ingest.BatchStats
	if *archive != "" {
		stats, err = pipeline.RunArchive(ctx, *archive)
	} else {
		stats, err = pipeline.RunMonth(ctx, *month)
	}
	if err != nil {
		log.Fatalf("Harvest failed: %v", err)
	}
	if bar != nil {
		bar.Finish()
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Found", "Saved", "Failed", "Output Dir"})
	t.AppendRow(table.Row{stats.Found, stats.Saved, stats.Failed, cfg.OutputDir})
	t.Render()

	if len(stats.FailedEntries) > 0 {
		ft := table.NewWriter()
		ft.SetOutputMirror(os.Stdout)
		ft.AppendHeader(table.Row{"Failed Entry"})
		for _, entry := range stats.FailedEntries {
			ft.AppendRow(table.Row{entry})
		}
		ft.Render()
	}
}
