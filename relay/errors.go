package relay

import "errors"

var (
	ErrNotReady     = errors.New("relay: mail credentials not loaded")
	ErrBuildMailer  = errors.New("relay: failed to build mailer")
	ErrBadSchedule  = errors.New("relay: invalid supervise schedule")
	ErrStopTimedOut = errors.New("relay: supervisor did not stop in time")
)
