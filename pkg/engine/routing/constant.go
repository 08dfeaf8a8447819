package routing

import "errors"

const (
	// the search checks its context every CANCEL_CHECK_INTERVAL settled vertices
	CANCEL_CHECK_INTERVAL = 1024
)

var (
	ErrNoPathFound      = errors.New("no path found from the origin to the target")
	ErrTimeout          = errors.New("shortest path search timed out")
	ErrUnknownOrigin    = errors.New("origin node is not part of the road network")
	ErrNotParameterized = errors.New("query has no location")
)
