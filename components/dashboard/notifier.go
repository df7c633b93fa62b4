package dashboard

// Notifier surfaces toast-style feedback to the owner. The dashboard depends
// only on this interface; hosts plug in whatever notification surface they
// have.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type noopNotifier struct{}

func (noopNotifier) Success(string) {}
func (noopNotifier) Error(string)  {}

func normalizeNotifier(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}
