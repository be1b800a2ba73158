package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"clickstream-generator/internal/config"
	"clickstream-generator/internal/pipeline"
	"clickstream-generator/internal/sink"
)

func main() {
	var exitCode int
	defer func() {
		os.Exit(exitCode)
	}()

	configPath := flag.String("config", "config.yaml", "path to the yaml config file")
	sinkName := flag.String("sink", "", "output sink (csv, postgres, mysql, mongo, or clickhouse); overrides config")
	outPath := flag.String("out", "", "csv output path; overrides config")
	seed := flag.Int64("seed", -1, "random seed; overrides config when >= 0")

	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading .env: %v", err)
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		exitCode = 1
		return
	}
	if *sinkName != "" {
		cfg.Output.Sink = *sinkName
	}
	if *outPath != "" {
		cfg.Output.Path = *outPath
	}
	if *seed >= 0 {
		cfg.Generation.Seed = *seed
	}

	out, err := sink.New(cfg.Output.Sink)
	if err != nil {
		log.Printf("%v", err)
		exitCode = 1
		return
	}

	dsn, err := sinkDSN(cfg)
	if err != nil {
		log.Printf("%v", err)
		exitCode = 1
		return
	}
	if err := out.Open(dsn); err != nil {
		log.Printf("Failed to open %s sink: %v", cfg.Output.Sink, err)
		exitCode = 1
		return
	}
	defer out.Close()

	if err := pipeline.Run(context.Background(), cfg, out, dsnLabel(cfg, dsn), logger); err != nil {
		log.Printf("Generation failed: %v", err)
		exitCode = 1
		return
	}
}

func sinkDSN(cfg *config.Config) (string, error) {
	var dsn string
	switch cfg.Output.Sink {
	case "csv":
		dsn = cfg.Output.Path
	case "postgres":
		dsn = cfg.Sinks.Postgres
	case "mysql":
		dsn = cfg.Sinks.MySQL
	case "mongo":
		dsn = cfg.Sinks.Mongo
	case "clickhouse":
		dsn = cfg.Sinks.ClickHouse
	}
	if dsn == "" {
		return "", fmt.Errorf("no destination configured for sink %q", cfg.Output.Sink)
	}
	return dsn, nil
}

// dsnLabel keeps credentials out of the final summary line.
func dsnLabel(cfg *config.Config, dsn string) string {
	if cfg.Output.Sink == "csv" {
		return dsn
	}
	return cfg.Output.Sink + " sink"
}
