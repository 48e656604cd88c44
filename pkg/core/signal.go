package core

import "maps"

// Overrides maps a remote todo id to a user-chosen completion flag.
// Only toggled todos have an entry; absence defers to the remote value.
type Overrides map[int]bool

// Effective returns the completion flag analytics and views should use.
func (o Overrides) Effective(todoID int, remote bool) bool {
	if v, ok := o[todoID]; ok {
		return v
	}
	return remote
}

// Clone returns an independent copy.
func (o Overrides) Clone() Overrides {
	if o == nil {
		return Overrides{}
	}
	return maps.Clone(o)
}

// SignalKind distinguishes the two notification variants.
type SignalKind int

const (
	// SignalUpdated carries the new override map.
	SignalUpdated SignalKind = iota + 1
	// SignalInvalidate means the value changed elsewhere and must be re-read.
	SignalInvalidate
)

func (k SignalKind) String() string {
	switch k {
	case SignalUpdated:
		return "updated"
	case SignalInvalidate:
		return "invalidate"
	}
	return "unknown"
}

// Signal is delivered to notifier subscribers.
type Signal struct {
	Kind      SignalKind
	Overrides Overrides
}

// Updated builds a signal carrying its payload.
func Updated(o Overrides) Signal {
	return Signal{Kind: SignalUpdated, Overrides: o.Clone()}
}

// Invalidate builds a payload-less signal.
func Invalidate() Signal {
	return Signal{Kind: SignalInvalidate}
}

// Publisher broadcasts signals on a named topic.
type Publisher interface {
	Publish(topic string, sig Signal)
}
