package runtime

import (
	"sync"

	"group-chat/contract"
)

type Set map[string]struct{}

// Registry tells the fanout which sinks receive the events of a group.
// A sink subscribed without groups receives every event.
type Registry struct {
	mu          sync.RWMutex
	sinks       map[string]contract.EventSink // map sink name -> sink
	global      Set
	groupToSink map[string]Set // map group -> sink names
}

func NewRegistry() *Registry {
	return &Registry{
		sinks:       make(map[string]contract.EventSink),
		global:      make(Set),
		groupToSink: make(map[string]Set),
	}
}

// SinksFor returns the global sinks followed by those scoped to groupID.
// A sink listed in both is returned once.
func (r *Registry) SinksFor(groupID string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(Set)
	var active []contract.EventSink
	collect := func(names Set) {
		for name := range names {
			if _, ok := seen[name]; ok {
				continue
			}
			if sink, exists := r.sinks[name]; exists {
				seen[name] = struct{}{}
				active = append(active, sink)
			}
		}
	}
	collect(r.global)
	collect(r.groupToSink[groupID])
	return active
}

// Subscribe registers sink under name, replacing any previous subscription
// with the same name.
func (r *Registry) Subscribe(name string, sink contract.EventSink, groupIDs ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(name)
	r.sinks[name] = sink
	if len(groupIDs) == 0 {
		r.global[name] = struct{}{}
		return
	}
	for _, groupID := range groupIDs {
		if _, ok := r.groupToSink[groupID]; !ok {
			r.groupToSink[groupID] = make(Set)
		}
		r.groupToSink[groupID][name] = struct{}{}
	}
}

// Unsubscribe removes a sink and leaves no empty group entries behind.
func (r *Registry) Unsubscribe(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(name)
}

func (r *Registry) removeLocked(name string) {
	delete(r.sinks, name)
	delete(r.global, name)
	for groupID, names := range r.groupToSink {
		delete(names, name)
		if len(names) == 0 {
			delete(r.groupToSink, groupID)
		}
	}
}
