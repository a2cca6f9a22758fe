package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	apidataset "ypll_explorer/pkg/api/dataset"
	apiprojection "ypll_explorer/pkg/api/projection"
	"ypll_explorer/pkg/core/config"
	"ypll_explorer/pkg/core/predict"
	"ypll_explorer/pkg/core/projection"
	"ypll_explorer/pkg/core/store"
)

func main() {
	// Load environment variables
	godotenv.Load()

	cfg, err := config.Load("config/app.yaml")
	if err != nil {
		fmt.Printf("[FATAL] Failed to load config: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Record source: DB primary, CSV fallback
	repo := store.NewRecordsRepo(nil, cfg.Data.Path)
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(ctx); err != nil {
			fmt.Printf("[WARNING] Database init failed: %v\n", err)
			fmt.Println("  Falling back to CSV dataset")
		} else {
			defer store.Close()
			repo = store.NewRecordsRepo(store.GetPool(), cfg.Data.Path)
		}
	}

	ds, err := repo.LoadAll(ctx)
	if err != nil {
		fmt.Printf("[FATAL] Failed to load dataset: %v\n", err)
		os.Exit(1)
	}

	// Trained model: remote service if configured, local coefficients otherwise
	var model predict.Model
	if cfg.Model.URL != "" {
		model = predict.NewRemoteModel(cfg.Model.URL)
		fmt.Printf("[MODEL] Using remote model service at %s\n", cfg.Model.URL)
	} else {
		linear, err := predict.LoadLinearModel(cfg.Model.Path)
		if err != nil {
			fmt.Printf("[FATAL] Failed to load model: %v\n", err)
			os.Exit(1)
		}
		model = linear
	}

	engine := projection.NewEngine(ds, model)

	// Projection endpoints
	projHandler := apiprojection.NewHandler(engine)
	http.HandleFunc("/api/projection/summary", projHandler.HandleSummary)
	http.HandleFunc("/api/projection/covariates", projHandler.HandleCovariates)

	// Dataset metadata endpoints
	infoHandler := apidataset.NewHandler(ds)
	http.HandleFunc("/api/dataset/info", infoHandler.HandleInfo)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("API server starting on %s...\n", addr)
	fmt.Println("  - GET  /api/dataset/info")
	fmt.Println("  - POST /api/projection/summary")
	fmt.Println("  - POST /api/projection/covariates")

	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
