package managers

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/MikeConroy67/hydrology-tools/internal/controllers/rest"
	"github.com/MikeConroy67/hydrology-tools/internal/storage"
	"github.com/MikeConroy67/hydrology-tools/pkg/config"
	"github.com/MikeConroy67/hydrology-tools/pkg/hydraulics"
)

// ControllerManager interface for the controller manager
type ControllerManager interface {
	StartControllers() error
}

// Controller is an interface that provides standard methods for various controller backends
type Controller interface {
	StartController() error
}

type controllerManager struct {
	ctx         context.Context
	wg          *sync.WaitGroup
	logger      *zap.SugaredLogger
	controllers []Controller
}

// NewControllerManager creates a new controller manager
func NewControllerManager(ctx context.Context, wg *sync.WaitGroup, configProvider config.ConfigProvider, distributor chan<- hydraulics.TraversalResult, results storage.ResultReader, logger *zap.SugaredLogger) (ControllerManager, error) {
	cm := &controllerManager{
		ctx:         ctx,
		wg:          wg,
		logger:      logger,
		controllers: make([]Controller, 0),
	}

	controllers, err := configProvider.GetControllers()
	if err != nil {
		return nil, fmt.Errorf("could not load controller configuration: %w", err)
	}

	for _, con := range controllers {
		switch con.Type {
		case "rest":
			if con.RESTServer == nil {
				return nil, fmt.Errorf("rest controller requires a rest-server section")
			}
			controller, err := rest.NewController(ctx, wg, *con.RESTServer, distributor, results, logger)
			if err != nil {
				return nil, fmt.Errorf("error creating REST controller: %w", err)
			}
			cm.controllers = append(cm.controllers, controller)
		default:
			return nil, fmt.Errorf("unknown controller type: %s", con.Type)
		}
	}

	return cm, nil
}

func (c *controllerManager) StartControllers() error {
	c.logger.Info("Starting controller manager...")

	for _, controller := range c.controllers {
		if err := controller.StartController(); err != nil {
			return fmt.Errorf("error starting controller: %w", err)
		}
	}

	c.logger.Infof("Started %d controllers successfully", len(c.controllers))
	return nil
}
