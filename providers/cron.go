package providers

// ICronProvider defines periodic jobs scheduler.
type ICronProvider interface {
	AddFunc(spec string, cmd func()) (int, error)
	RemoveFunc(id int)
	Stop()
}
