package refresh

// Observer receives coordinator lifecycle events, typically to feed metrics.
type Observer interface {
	RefreshStarted()
	RefreshFinished(err error)
	Queued()
	Drained(n int)
}

type nopObserver struct{}

func (nopObserver) RefreshStarted()       {}
func (nopObserver) RefreshFinished(error) {}
func (nopObserver) Queued()               {}
func (nopObserver) Drained(int)           {}
