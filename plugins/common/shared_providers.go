package common

// ISecretProvider defines secrets provider.
type ISecretProvider interface {
	Get(string) (string, error)
	Set(name string, data string) error
}

// ILoggerProvider defines logger provider which will be passed to every system.
type ILoggerProvider interface {
	Debug(msg string, fields ...string)
	Info(msg string, fields ...string)
	Warn(msg string, fields ...string)
	Error(msg string, err error, fields ...string)
	Fatal(msg string, err error, fields ...string)
}
