package icinga

import "errors"

var (
	// ErrInvalidExecutablePath indicates the running executable could not be resolved.
	ErrInvalidExecutablePath = errors.New("icinga: invalid executable path")

	// ErrNilFlagSet indicates no flag set was given.
	ErrNilFlagSet = errors.New("icinga: flag set is nil")
)

// EnvGenerate is the environment variable that triggers PrintIfEnvAndExit.
const EnvGenerate = "GENERATE_ICINGA_COMMAND"
