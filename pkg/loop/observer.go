package loop

import "time"

// RenderReport describes one render pass.
type RenderReport struct {
	Frame      uint64        // Frame number; equals the committed frame count on success
	Start      time.Time     // When the pass started
	Duration   time.Duration // Wall time of the pass
	Patches    int           // Patches applied to the document
	Retargets  int           // Listeners retargeted without mutation
	Created    int           // Live nodes created
	Handles    int           // Callback handles registered by the view
	ArenaBytes int           // Bytes allocated for the frame
	Err        error         // Non-nil when the pass was aborted
}

// Observer receives loop events. Observers run on the loop's thread and must
// not call back into the loop.
type Observer interface {
	RenderDone(r RenderReport)
	Dispatched(stale bool)
}

// Observers fans out to several observers.
func Observers(obs ...Observer) Observer {
	return multiObserver(obs)
}

type multiObserver []Observer

func (m multiObserver) RenderDone(r RenderReport) {
	for _, o := range m {
		o.RenderDone(r)
	}
}

func (m multiObserver) Dispatched(stale bool) {
	for _, o := range m {
		o.Dispatched(stale)
	}
}

type nopObserver struct{}

func (nopObserver) RenderDone(RenderReport) {}
func (nopObserver) Dispatched(bool)         {}
