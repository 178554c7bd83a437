// Package client implements the loyalty client application runtime.
//
// It wires the local repository, the remote store adapter, and the background
// synchronization job into a single process lifecycle.
package client
