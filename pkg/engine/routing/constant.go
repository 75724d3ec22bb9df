package routing

import "errors"

const (
	// settled vertices between two context checks
	CANCEL_CHECK_INTERVAL = 1024
	STORAGE_INITIAL_SIZE  = 1024
)

var (
	ErrNoPath           = errors.New("no path between source and target")
	ErrRouteTimeout     = errors.New("shortest path query timed out")
	ErrVertexOutOfRange = errors.New("vertex id out of range")
)
