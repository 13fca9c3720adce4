package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/uptrace/bun"

	"github.com/fewie27/ultimate/internal/analyze"
	"github.com/fewie27/ultimate/internal/chromemdb"
	"github.com/fewie27/ultimate/internal/classify"
	"github.com/fewie27/ultimate/internal/config"
	"github.com/fewie27/ultimate/internal/corpus"
	"github.com/fewie27/ultimate/internal/db"
	"github.com/fewie27/ultimate/internal/embedding"
	"github.com/fewie27/ultimate/internal/essentials"
	"github.com/fewie27/ultimate/internal/helper"
	"github.com/fewie27/ultimate/internal/llmservice"
	"github.com/fewie27/ultimate/internal/parser"
	"github.com/fewie27/ultimate/internal/server"
)

const configFilePath = "./configs/config.yaml"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Caller().Logger()

	configPath := flag.String("config", configFilePath, "Path to the config file")
	filePath := flag.String("file", "", "Analyze a single document and print the result instead of serving")
	dryRun := flag.Bool("dry-run", false, "Do not persist the analysis in -file mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
	}

	ctx := context.Background()
	analyzer, database := buildAnalyzer(ctx, cfg)
	defer database.Close()

	if *filePath != "" {
		analyzeFile(ctx, analyzer, database, *filePath, *dryRun)
		return
	}

	srv := server.New(analyzer, database, cfg.Server.UploadsDir)
	if err := srv.Run(&cfg.Server); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

// buildAnalyzer wires the pipeline: embedder, vector store, reference
// corpora, LLM clients and the result database. Corpus rebuild completes
// before any request is served.
func buildAnalyzer(ctx context.Context, cfg *config.Config) (*analyze.Analyzer, *bun.DB) {
	if !cfg.VectorDB.InMemory {
		if err := helper.CreateFolder(cfg.VectorDB.Path); err != nil {
			log.Fatal().Err(err).Msg("Error creating vector database folder")
		}
	}
	manager, err := chromemdb.NewManager(cfg.VectorDB.Path, cfg.VectorDB.InMemory)
	if err != nil {
		log.Fatal().Err(err).Msg("Error creating vector database manager")
	}

	embedder, err := embedding.NewEmbedder(&cfg.LLM, cfg.Embedding.EmbeddingModel)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing embedder")
	}

	inference, err := llmservice.New(&cfg.LLM, cfg.LLM.InferenceModel)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing inference model")
	}
	vision, err := llmservice.New(&cfg.LLM, cfg.LLM.VisionModel)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing vision model")
	}

	extractor := parser.NewExtractor(vision, cfg.LLM.Timeout())
	splitter := parser.NewSplitter()
	splitter.MinSegment = cfg.Analysis.MinSegmentLength

	loader := corpus.NewLoader(manager, embedder, extractor, splitter)
	minimal, sample, err := loader.BuildDefaults(ctx, cfg.Analysis.MinimalRequirementDocs, cfg.Analysis.SampleAgreementDocs)
	if err != nil {
		log.Fatal().Err(err).Msg("Error building reference collections")
	}

	policy := classify.DefaultPolicy()
	policy.MinLength = cfg.Analysis.MinClassifyLength
	policy.SampleThreshold = *cfg.Analysis.SampleThreshold
	policy.MinimalThreshold = *cfg.Analysis.MinimalThreshold
	classifier := classify.New(embedder, minimal, sample, policy, cfg.Analysis.Workers)

	ess := essentials.NewExtractor(inference, cfg.LLM.Timeout())
	analyzer := analyze.New(extractor, splitter, classifier, ess)

	sqldb, err := db.ConnectDB(cfg.Store.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}
	database := db.NewDB(sqldb, cfg.Store.Debug)
	if err := db.InitDB(ctx, database); err != nil {
		log.Fatal().Err(err).Msg("Error initializing database")
	}

	return analyzer, database
}

func analyzeFile(ctx context.Context, analyzer *analyze.Analyzer, database *bun.DB, filePath string, dryRun bool) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatal().Err(err).Msgf("Failed to open file: %s", filePath)
	}

	result := analyzer.Analyze(ctx, data, filePath)
	helper.PrettyPrint(result)

	if dryRun {
		return
	}
	if err := db.StoreAnalysis(ctx, database, result, filePath); err != nil {
		log.Fatal().Err(err).Msg("Error storing analysis")
	}
}
