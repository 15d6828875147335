package service

// Service is a long-running daemon component. Start blocks until the
// service stops or fails; Stop triggers shutdown and may return before
// Start does.
type Service interface {
	Start() error
	Stop() error
}
