package scenery

import "time"

// Document resolves selectors to ordered element collections. Hosts provide
// it: the dom package backs it with an HTML tree, the stage package with SDL
// textures and virtual buttons.
type Document interface {
	QueryAll(selector string) ([]Element, error)
}

// Element is an opaque scene handle or trigger affordance.
// AddClass and RemoveClass must be idempotent.
type Element interface {
	AddClass(name string)
	RemoveClass(name string)
	OnClick(handler func(*Event) error)
	Data(key string) (string, bool)
}

// Trigger names a group of affordances that each compute a target index.
type Trigger int

const (
	TriggerNone Trigger = iota
	TriggerNext
	TriggerPrev
	TriggerReset
	TriggerGoto
	TriggerPop
)

// Triggers lists the bindable trigger groups in wiring order.
var Triggers = []Trigger{TriggerNext, TriggerPrev, TriggerReset, TriggerGoto, TriggerPop}

func (t Trigger) String() string {
	switch t {
	case TriggerNext:
		return "next"
	case TriggerPrev:
		return "prev"
	case TriggerReset:
		return "reset"
	case TriggerGoto:
		return "goto"
	case TriggerPop:
		return "pop"
	default:
		return "none"
	}
}

// ParseTrigger maps a trigger name back to its Trigger.
func ParseTrigger(name string) Trigger {
	for _, t := range Triggers {
		if t.String() == name {
			return t
		}
	}
	return TriggerNone
}

// Event describes what caused a transition. Programmatic calls may pass nil.
type Event struct {
	Trigger Trigger
	Target  Element // Element that was clicked, nil for non-element sources
	Source  string  // Free-form origin ("click", "evdev", "sdl", ...)
	Time    time.Time
	Payload any
}
