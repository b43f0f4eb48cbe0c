package main

import (
	"context"
	"flag"
	"log"
	"os"

	"racephoto-marketplace/internal/config"
	"racephoto-marketplace/internal/db"
	"racephoto-marketplace/internal/importer"
	accountrepo "racephoto-marketplace/internal/repository/account"
	catalogrepo "racephoto-marketplace/internal/repository/catalog"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to photo CSV export")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, catalogrepo.NewPostgresIngest(pool), accountrepo.NewPostgres(pool, logger))
	imported, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import: %v", err)
	}

	logger.Printf("imported %d photos", imported)
}
