package envconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	StoreDriverFile     = "file"
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
)

type storeEnv struct {
	Driver   string `env:"STORE_DRIVER" envDefault:"file"`
	FilePath string `env:"STORE_FILE_PATH" envDefault:"parts_data.json"`
	Seed     bool   `env:"STORE_SEED" envDefault:"false"`
}

type store struct {
	raw storeEnv
}

func NewStoreConfig() (*store, error) {
	var raw storeEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}

	switch raw.Driver {
	case StoreDriverFile, StoreDriverMongo, StoreDriverPostgres:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", raw.Driver)
	}

	return &store{raw: raw}, nil
}

func (cfg *store) Driver() string   { return cfg.raw.Driver }
func (cfg *store) FilePath() string { return cfg.raw.FilePath }
func (cfg *store) Seed() bool       { return cfg.raw.Seed }
