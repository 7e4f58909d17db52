package service

import "time"

// Clock returns the current time. Services take one so tests can pin "today";
// production passes time.Now.
type Clock func() time.Time
