package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/madfam-org/avala/internal/app"
	avalasync "github.com/madfam-org/avala/internal/sync"
)

func main() {
	os.Exit(run())
}

// run carries the real work so deferred cleanup (log flush) happens before
// the process exits.
func run() int {
	var dir string
	var verbose bool
	flag.StringVar(&dir, "dir", "", "directory holding the registry extracts (defaults to AVALA_EXTRACT_DIR)")
	flag.BoolVar(&verbose, "verbose", false, "print per-step counters")
	flag.Parse()

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		return 1
	}
	defer application.Close()

	if dir == "" {
		dir = application.Cfg.ExtractDir
	}

	runner := avalasync.NewRunner(application.DB, application.Log)
	runner.BatchSize = application.Cfg.BatchSize

	res, err := runner.Run(context.Background(), dir)
	if err != nil {
		if errors.Is(err, avalasync.ErrNoStandards) {
			fmt.Printf("sync aborted: %v\n", err)
		} else {
			fmt.Printf("sync failed: %v\n", err)
		}
		return 1
	}

	if verbose {
		fmt.Printf("sectors:        processed=%d skipped=%d\n", res.Sectors.Processed, res.Sectors.Skipped)
		fmt.Printf("committees:     processed=%d skipped=%d\n", res.Committees.Processed, res.Committees.Skipped)
		fmt.Printf("standards:      processed=%d skipped=%d\n", res.Standards.Processed, res.Standards.Skipped)
		fmt.Printf("occupations:    attempted=%d inserted=%d\n", res.Standards.OccupationsAttempted, res.Standards.OccupationsInserted)
		fmt.Printf("certifiers:     processed=%d skipped=%d\n", res.Certifiers.Processed, res.Certifiers.Skipped)
		fmt.Printf("centers:        processed=%d skipped=%d\n", res.Centers.Processed, res.Centers.Skipped)
		fmt.Printf("accreditations: attempted=%d inserted=%d skipped=%d\n",
			res.Relationships.Accreditations.Attempted,
			res.Relationships.Accreditations.Inserted,
			res.Relationships.Accreditations.SkippedUnresolved+res.Relationships.Accreditations.SkippedDuplicate)
		fmt.Printf("offerings:      attempted=%d inserted=%d skipped=%d\n",
			res.Relationships.Offerings.Attempted,
			res.Relationships.Offerings.Inserted,
			res.Relationships.Offerings.SkippedUnresolved+res.Relationships.Offerings.SkippedDuplicate)
	}
	if res.Job != nil {
		fmt.Printf("done; items_processed=%d items_skipped=%d job=%s\n",
			res.Job.ItemsProcessed, res.Job.ItemsSkipped, res.Job.ID.String())
	}
	return 0
}
