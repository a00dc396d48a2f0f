package presentation

import (
	"storefront-go/core/event"
	"storefront-go/core/router"
)

// Offline presents the page shown while the API is unreachable. Retry goes
// back home once the probe reports the API reachable again.
type Offline struct {
	*presenter
	probe func() bool
}

// NewOffline creates the offline presenter. A nil probe always retries.
func NewOffline(surface Surface, probe func() bool, deps Deps) *Offline {
	p := &Offline{presenter: newPresenter("offline", surface, deps), probe: probe}

	p.onShown(func(router.Params) {
		p.begin()
		p.logErr("failed to render", p.view.Render(TemplateOffline, OfflineData{}))
	})
	p.onAction(func(a event.Action) {
		if a.Name != "retry" {
			return
		}
		if p.probe != nil && !p.probe() {
			p.logErr("failed to render", p.render(TemplateOffline, OfflineData{StillOffline: true}))
			return
		}
		p.logErr("failed to navigate", p.open(p.deps.Paths.Home, router.ReplaceState()))
	})
	return p
}
