package ai

// Error kinds for the provider layer. Callers branch on these two types and
// never see backend-specific failures.

// ConfigError indicates a missing credential or an unsupported provider name.
// It maps to a client error at the HTTP boundary.
type ConfigError struct {
	msg string
}

func (e *ConfigError) Error() string {
	return e.msg
}

// NewConfigError creates a ConfigError with the given message.
func NewConfigError(msg string) error {
	return &ConfigError{msg: msg}
}

// UnavailableError indicates the remote provider call failed, whatever the
// underlying transport, auth or rate-limit reason. It maps to a
// service-unavailable response at the HTTP boundary.
type UnavailableError struct {
	msg string
	err error
}

func (e *UnavailableError) Error() string {
	return e.msg
}

func (e *UnavailableError) Unwrap() error {
	return e.err
}

// NewUnavailableError wraps a backend failure in a uniform error kind.
func NewUnavailableError(msg string, err error) error {
	return &UnavailableError{msg: msg, err: err}
}
