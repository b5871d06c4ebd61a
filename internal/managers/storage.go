// Package managers wires configured storage backends and controllers into the
// running application.
package managers

import (
	"context"
	"fmt"
	"sync"

	"github.com/MikeConroy67/hydrology-tools/internal/storage"
	"github.com/MikeConroy67/hydrology-tools/internal/storage/file"
	"github.com/MikeConroy67/hydrology-tools/internal/storage/sqlite"
	"github.com/MikeConroy67/hydrology-tools/internal/storage/timescaledb"
	"github.com/MikeConroy67/hydrology-tools/pkg/config"
	"github.com/MikeConroy67/hydrology-tools/pkg/hydraulics"
)

// StorageManager holds our active storage backends
type StorageManager struct {
	Engines           []StorageEngine
	ResultDistributor chan hydraulics.TraversalResult
}

// StorageEngine holds a backend storage engine's interface as well as
// a channel for passing results to the engine
type StorageEngine struct {
	Engine storage.StorageEngineInterface
	C      chan<- hydraulics.TraversalResult
}

// NewStorageManager creates a StorageManager object, populated with all configured StorageEngines
func NewStorageManager(ctx context.Context, wg *sync.WaitGroup, configProvider config.ConfigProvider) (*StorageManager, error) {
	s := StorageManager{}

	storageConfig, err := configProvider.GetStorageConfig()
	if err != nil {
		return nil, fmt.Errorf("could not load storage configuration: %w", err)
	}

	// Initialize our channel for passing results to the distributor
	s.ResultDistributor = make(chan hydraulics.TraversalResult, 20)

	// Start our result distributor to fan received results out to storage
	// backends
	go s.startResultDistributor(ctx, wg)

	// Check the configuration for supported storage backends and enable
	// them if found

	if storageConfig.File != nil {
		if err := s.AddEngine(ctx, wg, "file", storageConfig); err != nil {
			return &s, fmt.Errorf("could not add file storage backend: %w", err)
		}
	}

	if storageConfig.SQLite != nil {
		if err := s.AddEngine(ctx, wg, "sqlite", storageConfig); err != nil {
			return &s, fmt.Errorf("could not add SQLite storage backend: %w", err)
		}
	}

	if storageConfig.TimescaleDB != nil && storageConfig.TimescaleDB.ConnectionString != "" {
		if err := s.AddEngine(ctx, wg, "timescaledb", storageConfig); err != nil {
			return &s, fmt.Errorf("could not add TimescaleDB storage backend: %w", err)
		}
	}

	return &s, nil
}

// AddEngine adds a new StorageEngine of name engineName to our StorageManager
func (s *StorageManager) AddEngine(ctx context.Context, wg *sync.WaitGroup, engineName string, sc *config.StorageData) error {
	var err error

	switch engineName {
	case "file":
		se := StorageEngine{}
		se.Engine, err = file.New(sc.File)
		if err != nil {
			return err
		}
		se.C = se.Engine.StartStorageEngine(ctx, wg)
		s.Engines = append(s.Engines, se)
	case "sqlite":
		se := StorageEngine{}
		se.Engine, err = sqlite.New(ctx, sc.SQLite)
		if err != nil {
			return err
		}
		se.C = se.Engine.StartStorageEngine(ctx, wg)
		s.Engines = append(s.Engines, se)
	case "timescaledb":
		se := StorageEngine{}
		se.Engine, err = timescaledb.New(ctx, sc.TimescaleDB)
		if err != nil {
			return err
		}
		se.C = se.Engine.StartStorageEngine(ctx, wg)
		s.Engines = append(s.Engines, se)
	}

	return nil
}

// ResultReader returns the first storage backend able to read results back
// out, or nil when no archival backend is configured.
func (s *StorageManager) ResultReader() storage.ResultReader {
	for _, e := range s.Engines {
		if r, ok := e.Engine.(storage.ResultReader); ok {
			return r
		}
	}
	return nil
}

// startResultDistributor receives traversal results and fans them out to the
// various storage backends
func (s *StorageManager) startResultDistributor(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	defer wg.Done()

	for {
		select {
		case r := <-s.ResultDistributor:
			for _, e := range s.Engines {
				e.C <- r
			}
		case <-ctx.Done():
			// forward anything still queued so backends can drain it
			for {
				select {
				case r := <-s.ResultDistributor:
					for _, e := range s.Engines {
						e.C <- r
					}
				default:
					return
				}
			}
		}
	}
}
