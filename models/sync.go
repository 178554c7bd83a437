package models

import "time"

// Sync directions reported in [SyncResult].
const (
	SyncDirectionPush = "push"
	SyncDirectionPull = "pull"
	SyncDirectionNone = "none"
)

// SyncState is the single repository-wide sync metadata record. There is one
// per account; it is the only place the dirty timestamp lives.
type SyncState struct {
	// LastModified is advanced exclusively by genuine local mutations
	// (the dirty marker). A pull or a sync must never set it to "now":
	// after a pull it is set to the remote freshness timestamp that was
	// read, so the next comparison cannot mistake downloaded data for
	// local edits.
	LastModified *time.Time `json:"last_modified,omitempty"`

	// LastSyncedAt records the completion time of the last successful
	// push or pull.
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`

	// LastDownloadedAt records the completion time of the last
	// first-login bulk download.
	LastDownloadedAt *time.Time `json:"last_downloaded_at,omitempty"`

	// HasUnsyncedChanges is true while local changes exist that have not
	// been pushed.
	HasUnsyncedChanges bool `json:"has_unsynced_changes"`

	// Version counts dirty-marker invocations. Informational only; it is
	// never compared against anything remote.
	Version int64 `json:"version"`
}

// SyncCounts holds the number of records successfully transferred per entity
// type during one sync. Counts are reported even when the sync as a whole
// fails, so the caller can render partial-success detail.
type SyncCounts struct {
	Profile   int `json:"profile"`
	Rewards   int `json:"rewards"`
	Campaigns int `json:"campaigns"`
	Customers int `json:"customers"`
}

// SyncResult is the structured outcome of one sync or bulk-download run.
// The engine never panics or throws past its boundary; everything the UI
// needs to render lands here.
type SyncResult struct {
	// Direction is one of the SyncDirection* constants.
	Direction string `json:"direction"`

	Success bool       `json:"success"`
	Counts  SyncCounts `json:"counts"`

	// Errors collects human-readable failure descriptions, one per failed
	// remote call, in the order they occurred.
	Errors []string `json:"errors,omitempty"`
}
