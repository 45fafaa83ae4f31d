package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/madfam-org/avala/internal/app"
	types "github.com/madfam-org/avala/internal/domain"
	"github.com/madfam-org/avala/internal/pkg/dbctx"
	"github.com/madfam-org/avala/internal/validate"
)

func main() {
	os.Exit(run())
}

// run carries the real work so deferred cleanup (log flush) happens before
// the process exits.
func run() int {
	var baselinesPath string
	var verbose bool
	flag.StringVar(&baselinesPath, "baselines", "", "path to a baselines YAML (defaults to embedded)")
	flag.BoolVar(&verbose, "verbose", false, "also print the latest sync ledger entry")
	flag.Parse()

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		return 1
	}
	defer application.Close()

	baselines, err := validate.LoadBaselines(baselinesPath)
	if err != nil {
		fmt.Printf("load baselines: %v\n", err)
		return 1
	}

	ctx := context.Background()
	validator := validate.New(application.DB, application.Log, baselines)
	report, err := validator.Run(ctx)
	if err != nil {
		fmt.Printf("validation failed to run: %v\n", err)
		return 1
	}

	fmt.Print(report.String())

	if verbose {
		job, err := application.Repos.SyncJob.GetLatestByKind(dbctx.Context{Ctx: ctx}, types.SyncJobKindRegistry)
		if err == nil && job != nil {
			raw, _ := json.MarshalIndent(job, "", "  ")
			fmt.Printf("latest sync job:\n%s\n", raw)
		}
	}

	if report.Failed() {
		return 1
	}
	return 0
}
