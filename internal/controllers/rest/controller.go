// Package rest implements the REST API controller: on-demand traversal
// estimates, recent stored results, and material listings over HTTP.
package rest

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/MikeConroy67/hydrology-tools/internal/log"
	"github.com/MikeConroy67/hydrology-tools/internal/storage"
	"github.com/MikeConroy67/hydrology-tools/pkg/config"
	"github.com/MikeConroy67/hydrology-tools/pkg/hydraulics"
	"github.com/MikeConroy67/hydrology-tools/pkg/responseformat"
)

// Controller represents the REST server controller
type Controller struct {
	ctx         context.Context
	wg          *sync.WaitGroup
	restConfig  config.RESTServerData
	Server      http.Server
	distributor chan<- hydraulics.TraversalResult
	results     storage.ResultReader
	formatter   *responseformat.Formatter
	logger      *zap.SugaredLogger
}

// NewController creates a new REST server controller. results may be nil when
// no storage backend can read results back; the recent-results endpoint then
// reports that no archive is configured.
func NewController(ctx context.Context, wg *sync.WaitGroup, rc config.RESTServerData, distributor chan<- hydraulics.TraversalResult, results storage.ResultReader, logger *zap.SugaredLogger) (*Controller, error) {
	if rc.Port == 0 {
		return nil, fmt.Errorf("rest server requires a port")
	}

	ctrl := &Controller{
		ctx:         ctx,
		wg:          wg,
		restConfig:  rc,
		distributor: distributor,
		results:     results,
		formatter:   responseformat.NewFormatter(),
		logger:      logger,
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/traversal", ctrl.handleTraversal).Methods(http.MethodPost)
	router.HandleFunc("/api/results/recent", ctrl.handleRecentResults).Methods(http.MethodGet)
	router.HandleFunc("/api/materials", ctrl.handleMaterials).Methods(http.MethodGet)
	router.HandleFunc("/api/materials/{material}", ctrl.handleMaterial).Methods(http.MethodGet)
	router.HandleFunc("/api/health", ctrl.handleHealth).Methods(http.MethodGet)

	ctrl.Server = http.Server{
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return ctrl, nil
}

// StartController starts the HTTP listener and the shutdown watcher
func (c *Controller) StartController() error {
	addr := net.JoinHostPort(c.restConfig.ListenAddr, strconv.Itoa(c.restConfig.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", addr, err)
	}

	log.Infof("REST server listening on %s", addr)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.Server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("REST server shutdown error: %v", err)
		}
	}()

	return nil
}
