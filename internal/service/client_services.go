package service

import (
	"github.com/stampdeck/loyalty-keeper/internal/adapter"
	"github.com/stampdeck/loyalty-keeper/internal/logger"
	"github.com/stampdeck/loyalty-keeper/internal/store"
)

type ClientServices struct {
	SyncService ClientSyncService
	SyncJob     ClientSyncJob
}

func NewClientServices(storages *store.ClientStorages, remote adapter.RemoteStore, logger *logger.Logger) *ClientServices {
	syncSvc := NewClientSyncService(storages, remote, logger)

	return &ClientServices{
		SyncService: syncSvc,
		SyncJob:     NewClientSyncJob(syncSvc),
	}
}
