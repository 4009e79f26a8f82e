package health

// Service reports process liveness for the analysis API.
type Service struct{}

// NewService constructs the health service.
func NewService() *Service {
	return &Service{}
}

// Status reports liveness. There are no downstream dependencies to probe:
// job state is in-memory and the completion provider is only reached while
// a job is extracting.
func (s *Service) Status() map[string]bool {
	return map[string]bool{"ok": true}
}
