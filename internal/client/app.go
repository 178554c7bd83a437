package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/stampdeck/loyalty-keeper/internal/config"
	"github.com/stampdeck/loyalty-keeper/internal/logger"
	"github.com/stampdeck/loyalty-keeper/internal/service"
	"github.com/stampdeck/loyalty-keeper/internal/store"
)

type App struct {
	services *service.ClientServices
	storages *store.ClientStorages
	cfg      *config.ClientConfig
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, storages *store.ClientStorages, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	if services == nil || storages == nil || cfg == nil {
		return nil, errors.New("client app: nil dependency")
	}

	return &App{
		services: services,
		storages: storages,
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// Run implements [Client]. On a fresh installation it performs the first-login
// bulk download; otherwise it runs one immediate sync. It then keeps the
// periodic sync job running until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	accountID := a.cfg.App.AccountID

	empty, err := a.isLocalRepositoryEmpty(ctx, accountID)
	if err != nil {
		return fmt.Errorf("inspect local repository: %w", err)
	}

	if empty {
		a.logger.Info().Str("account_id", accountID).Msg("empty local repository, running first-login download")
		result := a.services.SyncService.FirstLoginDownload(ctx, accountID)
		if !result.Success {
			return fmt.Errorf("first-login download failed: %v", result.Errors)
		}
	} else {
		// the startup sync is best-effort: a failure is logged and the
		// periodic job retries on its next tick
		result := a.services.SyncService.Sync(ctx, accountID)
		if !result.Success {
			a.logger.Warn().
				Str("account_id", accountID).
				Strs("errors", result.Errors).
				Msg("startup sync failed")
		}
	}

	a.services.SyncJob.Start(ctx, accountID, a.cfg.Workers.SyncInterval)
	defer a.services.SyncJob.Stop()

	<-ctx.Done()
	a.logger.Info().Msg("shutting down")

	return nil
}

// isLocalRepositoryEmpty reports whether this is a fresh installation: no
// profile record and no completed bulk download.
func (a *App) isLocalRepositoryEmpty(ctx context.Context, accountID string) (bool, error) {
	_, err := a.storages.Profiles.GetProfile(ctx, accountID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrProfileNotFound) {
		return false, err
	}

	state, err := a.storages.SyncState.GetSyncState(ctx, accountID)
	if err != nil {
		return false, err
	}

	return state.LastDownloadedAt == nil, nil
}
