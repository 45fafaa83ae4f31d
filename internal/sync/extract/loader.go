package extract

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/madfam-org/avala/internal/pkg/logger"
)

const (
	FileStandards          = "standards.json"
	FileCommittees         = "committees.json"
	FileCertifiers         = "certifiers.json"
	FileCenters            = "centers.json"
	FileStandardCertifiers = "standard_certifiers.json"
	FileStandardDetails    = "standard_details.json"
)

// Load reads every known extract file under dir. Missing or malformed files
// log a warning and leave the corresponding Bundle field nil; nothing here
// aborts the run. Only the caller decides whether absence of the mandatory
// standards extract is fatal.
func Load(dir string, baseLog *logger.Logger) *Bundle {
	log := baseLog.With("component", "ExtractLoader", "dir", dir)
	b := &Bundle{}

	b.Standards = loadFile[[]StandardRecord](dir, FileStandards, log)
	b.Committees = loadFile[[]CommitteeRecord](dir, FileCommittees, log)
	b.Certifiers = loadFile[[]CertifierRecord](dir, FileCertifiers, log)
	b.Centers = loadFile[[]CenterRecord](dir, FileCenters, log)
	b.Matrix = loadFile[map[string][]string](dir, FileStandardCertifiers, log)
	b.Details = loadFile[map[string]DetailRecord](dir, FileStandardDetails, log)

	log.Info("Extracts loaded",
		"standards", len(b.Standards),
		"committees", len(b.Committees),
		"certifiers", len(b.Certifiers),
		"centers", len(b.Centers),
		"matrix_entries", len(b.Matrix),
		"detail_entries", len(b.Details),
	)
	return b
}

func loadFile[T any](dir, name string, log *logger.Logger) T {
	var out T
	path := filepath.Join(dir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Extract file missing, step will be skipped", "file", name, "error", err)
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		var zero T
		log.Warn("Extract file unparsable, step will be skipped", "file", name, "error", err)
		return zero
	}
	log.Debug("Extract file loaded", "file", name)
	return out
}
