// Package file implements an append-only NDJSON storage backend for traversal
// results, one JSON record per line.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/MikeConroy67/hydrology-tools/internal/log"
	"github.com/MikeConroy67/hydrology-tools/internal/storage"
	"github.com/MikeConroy67/hydrology-tools/pkg/config"
	"github.com/MikeConroy67/hydrology-tools/pkg/hydraulics"
)

// Storage holds the configuration for an NDJSON file storage backend
type Storage struct {
	path string
}

// New sets up a new file storage backend
func New(fc *config.FileData) (*Storage, error) {
	if fc.Path == "" {
		return nil, fmt.Errorf("file storage requires a path")
	}
	return &Storage{path: fc.Path}, nil
}

// StartStorageEngine creates a goroutine loop to receive traversal results and
// append them to the results log
func (s *Storage) StartStorageEngine(ctx context.Context, wg *sync.WaitGroup) chan<- hydraulics.TraversalResult {
	log.Info("starting file storage engine...")
	resultChan := make(chan hydraulics.TraversalResult, 10)
	go s.processResults(ctx, wg, resultChan)
	return resultChan
}

func (s *Storage) processResults(ctx context.Context, wg *sync.WaitGroup, rchan <-chan hydraulics.TraversalResult) {
	wg.Add(1)
	defer wg.Done()

	for {
		select {
		case r := <-rchan:
			if err := s.StoreResult(r); err != nil {
				log.Error("could not store traversal result:", err)
			}
		case <-ctx.Done():
			log.Info("cancellation request received. Cancelling results processor.")
			s.drain(rchan)
			return
		}
	}
}

// drain stores any results still queued at shutdown
func (s *Storage) drain(rchan <-chan hydraulics.TraversalResult) {
	for {
		select {
		case r := <-rchan:
			if err := s.StoreResult(r); err != nil {
				log.Error("could not store traversal result:", err)
			}
		default:
			return
		}
	}
}

// StoreResult appends one traversal result to the NDJSON log
func (s *Storage) StoreResult(r hydraulics.TraversalResult) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("could not open results log %s: %w", s.path, err)
	}
	defer f.Close()

	line, err := json.Marshal(storage.NewRecord(r))
	if err != nil {
		return fmt.Errorf("could not encode traversal result: %w", err)
	}
	line = append(line, '\n')

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("could not append to results log %s: %w", s.path, err)
	}
	return nil
}
