// Package listeners installs and removes the click handlers on toggle
// controls, keeping at most one per post.
package listeners

import (
	"io"
	"log/slog"

	"github.com/CrestNiraj12/authordir/tui/view"
)

// ToggleFunc is what a toggle click runs.
type ToggleFunc func(postID int)

type binding struct {
	button   *view.Node
	listener *view.Listener
}

// Registry remembers the exact listener installed on each toggle button so
// DetachAll removes that listener and not a look-alike.
type Registry struct {
	toggle   ToggleFunc
	bindings map[int]binding
	order    []int
	logger   *slog.Logger
}

// New creates a Registry whose listeners call toggle. A nil logger discards.
func New(toggle ToggleFunc, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{toggle: toggle, bindings: make(map[int]binding), logger: logger}
}

// AttachAll installs one listener on every indexed toggle button and
// returns the bound post ids in document order. A post that is already
// bound is detached first.
func (r *Registry) AttachAll(idx *view.Index) []int {
	attached := make([]int, 0, idx.Len())
	for _, id := range idx.IDs() {
		controls, ok := idx.Lookup(id)
		if !ok || controls.Button == nil || id == 0 {
			continue
		}
		r.detach(id)

		postID := id
		l := view.NewListener(func() { r.toggle(postID) })
		controls.Button.AddListener(l)
		r.bindings[id] = binding{button: controls.Button, listener: l}
		r.order = append(r.order, id)
		attached = append(attached, id)
	}
	r.logger.Debug("attached toggle listeners", "count", len(attached))
	return attached
}

// DetachAll removes every listener AttachAll installed and returns the post
// ids that were unbound, in attach order.
func (r *Registry) DetachAll() []int {
	detached := make([]int, 0, len(r.order))
	for _, id := range append([]int(nil), r.order...) {
		if r.detach(id) {
			detached = append(detached, id)
		}
	}
	r.logger.Debug("detached toggle listeners", "count", len(detached))
	return detached
}

func (r *Registry) detach(postID int) bool {
	b, ok := r.bindings[postID]
	if !ok {
		return false
	}
	if !b.button.RemoveListener(b.listener) {
		r.logger.Warn("bound listener was already gone", "post_id", postID)
	}
	delete(r.bindings, postID)
	for i, id := range r.order {
		if id == postID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Bound reports whether postID has an installed listener.
func (r *Registry) Bound(postID int) bool {
	_, ok := r.bindings[postID]
	return ok
}

// Len returns the number of active bindings.
func (r *Registry) Len() int {
	return len(r.bindings)
}
