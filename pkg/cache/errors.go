package cache

import "errors"

// ErrClosed is returned by Set on a closed cache.
var ErrClosed = errors.New("cache: closed")
