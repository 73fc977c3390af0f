package core

// Logger is the diagnostics sink shared by all components. Store failures and
// degraded views are reported here; nothing in the core treats them as fatal.
type Logger interface {
	Enable(enabled bool)
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
