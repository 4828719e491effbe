// Command validate-refdata checks a reference data directory against
// the catalog invariants and prints a summary. Run it after editing
// model_benchmarks.json or infrastructure.json:
//
//	go run ./tools/validate-refdata -dir ./data
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/moseskolleh/promptcoach/internal/refdata"
)

func main() {
	dir := flag.String("dir", "", "data directory (default: embedded tables)")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)

	var catalog *refdata.Catalog
	var err error
	if *dir != "" {
		catalog, err = refdata.LoadDir(*dir, logger)
	} else {
		catalog, err = refdata.Load(logger)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation failed: %v\n", err)
		os.Exit(1)
	}

	minWh, maxWh := catalog.EnergyRange()
	fmt.Printf("OK: %d models\n", catalog.ModelCount())
	fmt.Printf("energy range: %.3f - %.3f Wh\n", minWh, maxWh)
	for _, m := range catalog.Models() {
		fmt.Printf("  %-22s %-16s short=%.3fWh medium=%.3fWh long=%.3fWh\n",
			m.ID, m.HostingKey, m.Short.MeanWh, m.Medium.MeanWh, m.Long.MeanWh)
	}
}
