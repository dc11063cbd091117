package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Project() ProjectRepository
	Component() ComponentRepository
	FailureMode() FailureModeRepository
	Cause() CauseRepository
	Effect() EffectRepository
	Control() ControlRepository
	Action() ActionRepository

	Close() error
}
