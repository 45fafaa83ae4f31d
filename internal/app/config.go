package app

import (
	"github.com/madfam-org/avala/internal/platform/envutil"
)

type Config struct {
	ExtractDir string
	BatchSize  int
}

func LoadConfig() Config {
	return Config{
		ExtractDir: envutil.String("AVALA_EXTRACT_DIR", "./data"),
		BatchSize:  envutil.Int("AVALA_SYNC_BATCH_SIZE", 100),
	}
}
