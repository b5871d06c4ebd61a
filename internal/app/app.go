// Package app wires configuration, storage backends, controllers, and the
// traversal model into a running application.
package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/MikeConroy67/hydrology-tools/internal/log"
	"github.com/MikeConroy67/hydrology-tools/internal/managers"
	"github.com/MikeConroy67/hydrology-tools/pkg/config"
	"github.com/MikeConroy67/hydrology-tools/pkg/hydraulics"
)

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// Run starts the application and blocks until shutdown. Pipelines named in
// the configuration are estimated once at startup; configured controllers
// then keep serving until a shutdown signal arrives. With no controllers
// configured the application exits after the startup estimates are stored.
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	storageManager, err := managers.NewStorageManager(ctx, &wg, a.configProvider)
	if err != nil {
		return err
	}

	if err := a.runConfiguredPipelines(storageManager.ResultDistributor); err != nil {
		return err
	}

	controllers, err := a.configProvider.GetControllers()
	if err != nil {
		return err
	}
	if len(controllers) == 0 {
		log.Info("no controllers configured, exiting after startup estimates")
		// Let the distributor hand everything to the backends; they drain
		// their own queues during shutdown.
		for len(storageManager.ResultDistributor) > 0 {
			time.Sleep(10 * time.Millisecond)
		}
		cancel()
		wg.Wait()
		return nil
	}

	cm, err := managers.NewControllerManager(ctx, &wg, a.configProvider, storageManager.ResultDistributor, storageManager.ResultReader(), a.logger)
	if err != nil {
		return err
	}
	if err := cm.StartControllers(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	cancel()

	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}

// runConfiguredPipelines estimates every pipeline route named in the
// configuration and hands the results to the storage backends. A pipeline
// with invalid geometry is logged and skipped; it does not abort the rest.
func (a *App) runConfiguredPipelines(distributor chan<- hydraulics.TraversalResult) error {
	pipelines, err := a.configProvider.GetPipelines()
	if err != nil {
		return err
	}

	for _, p := range pipelines {
		segments := make([]hydraulics.SlopeSegment, len(p.Segments))
		for i, seg := range p.Segments {
			segments[i] = hydraulics.SlopeSegment{SlopeFraction: seg.Slope, LengthMeters: seg.LengthMeters}
		}
		pumps := make([]hydraulics.PumpEvent, len(p.Pumps))
		for i, pump := range p.Pumps {
			pumps[i] = hydraulics.PumpEvent{FlowRateBoostM3PerSec: pump.FlowRateBoostM3PerSec, PositionMeters: pump.PositionMeters}
		}

		result, err := hydraulics.RunTraversal(hydraulics.TraversalRequest{
			Material:              hydraulics.Material(p.Material),
			AgeYears:              p.AgeYears,
			InitialDiameterMeters: p.InitialDiameterMeters,
			Segments:              segments,
			Pumps:                 pumps,
			PumpPolicy:            hydraulics.PumpPolicyByName(p.PumpPolicy),
		})
		if err != nil {
			if errors.Is(err, hydraulics.ErrInvalidGeometry) {
				log.Errorf("pipeline %s: %v, skipping", p.Name, err)
				continue
			}
			return err
		}

		if result.MaterialDefaulted {
			log.Warnf("pipeline %s: unrecognized material %q, using %s defaults", p.Name, p.Material, result.Material)
		}

		log.Infow("pipeline estimated",
			"pipeline", p.Name,
			"material", result.Material,
			"effective_diameter_m", result.EffectiveDiameterMeters,
			"total_distance_m", result.TotalDistanceMeters,
			"travel_time_s", result.TotalTravelTimeSeconds,
		)

		distributor <- result
	}

	return nil
}
