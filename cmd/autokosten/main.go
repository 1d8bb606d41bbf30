// Command autokosten computes cost-of-ownership breakdowns for a list
// of plates and writes them as CSV, without the HTTP layer. Plates are
// read one per line from a file or stdin.
package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/rkeulen/autokosten/internal/config"
	"github.com/rkeulen/autokosten/internal/db"
	"github.com/rkeulen/autokosten/internal/export"
	"github.com/rkeulen/autokosten/internal/registry"
	"github.com/rkeulen/autokosten/internal/roadtax"
	"github.com/rkeulen/autokosten/internal/session"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to YAML config file")
	platesPath := flag.String("plates", "", "file with one plate per line (default stdin)")
	outPath := flag.String("o", "", "output CSV file (default stdout)")
	owner := flag.String("owner", "cli", "snapshot owner whose overrides and parameters to use")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	plates, err := readPlates(*platesPath)
	if err != nil {
		log.Fatalf("Failed to read plates: %v", err)
	}
	if len(plates) == 0 {
		log.Fatal("No plates given")
	}

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open snapshot store: %v", err)
	}
	defer closeStore()

	sessions := session.NewManager(
		store,
		registry.NewClient(cfg.Registry),
		roadtax.NewClient(cfg.RoadTax),
		cfg.Defaults,
		cfg.CacheTTL,
	)
	sess, err := sessions.Get(ctx, *owner)
	if err != nil {
		log.Fatalf("Failed to load session: %v", err)
	}

	results, failures, err := sess.ComputeAll(ctx, plates)
	for plate, ferr := range failures {
		log.WithField("plate", plate).WithError(ferr).Warn("plate skipped")
	}
	if err != nil {
		log.Fatalf("Computation failed: %v", err)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := export.WriteCSV(out, results); err != nil {
		log.Fatalf("Failed to write CSV: %v", err)
	}

	if err := sessions.Persist(ctx, *owner); err != nil {
		log.WithError(err).Warn("failed to persist session")
	}
}

// openStore opens the snapshot backend the config selects, same as the
// server does. The returned func releases the backend's connection.
func openStore(ctx context.Context, cfg *config.Config) (db.SnapshotStore, func(), error) {
	if cfg.Store.Backend == "mongo" {
		client, err := db.ConnectMongo()
		if err != nil {
			return nil, nil, err
		}
		store := &db.MongoSnapshotStore{Collection: client.Database("autokosten").Collection("snapshots")}
		return store, func() { client.Disconnect(ctx) }, nil
	}

	store, err := db.NewFileStore(cfg.Store.Dir)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}

func readPlates(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var plates []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			plates = append(plates, line)
		}
	}
	return plates, scanner.Err()
}
