package scenario

import "maps"

// NoTrigger marks an effect reference that points at no trigger.
const NoTrigger = -1

// Condition types.
const (
	ConditionScriptCall = "script_call"
)

// Effect types that carry a trigger reference.
const (
	EffectActivateTrigger   = "activate_trigger"
	EffectDeactivateTrigger = "deactivate_trigger"
)

// Condition is a trigger condition. Only script-call conditions are modelled
// explicitly; everything else travels in Attributes.
type Condition struct {
	Type       string         `json:"type" yaml:"type"`
	XSFunction string         `json:"xs_function,omitempty" yaml:"xs_function,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Effect is a trigger effect. TriggerID is set for effects that target
// another trigger of the same scenario.
type Effect struct {
	Type       string         `json:"type" yaml:"type"`
	TriggerID  *int           `json:"trigger_id,omitempty" yaml:"trigger_id,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Trigger is a named rule container.
type Trigger struct {
	ID          int         `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Enabled     bool        `json:"enabled" yaml:"enabled"`
	Looping     bool        `json:"looping,omitempty" yaml:"looping,omitempty"`
	Conditions  []Condition `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Effects     []Effect    `json:"effects,omitempty" yaml:"effects,omitempty"`
}

// Scenario is the in-memory form of a scenario file, reduced to its
// trigger set.
type Scenario struct {
	Title        string     `json:"title,omitempty" yaml:"title,omitempty"`
	Triggers     []*Trigger `json:"triggers" yaml:"triggers"`
	DisplayOrder []int      `json:"display_order" yaml:"display_order"`
}

// New returns an empty scenario.
func New(title string) *Scenario {
	return &Scenario{
		Title:        title,
		Triggers:     []*Trigger{},
		DisplayOrder: []int{},
	}
}

// Len returns the number of triggers.
func (s *Scenario) Len() int {
	return len(s.Triggers)
}

// Names returns trigger names in creation order.
func (s *Scenario) Names() []string {
	names := make([]string, len(s.Triggers))
	for i, t := range s.Triggers {
		names[i] = t.Name
	}
	return names
}

// Clone returns a deep copy of the trigger. Attribute maps are copied one
// level deep; nested attribute values are shared.
func (t *Trigger) Clone() *Trigger {
	c := *t
	if t.Conditions != nil {
		c.Conditions = make([]Condition, len(t.Conditions))
		for i, cond := range t.Conditions {
			cond.Attributes = maps.Clone(cond.Attributes)
			c.Conditions[i] = cond
		}
	}
	if t.Effects != nil {
		c.Effects = make([]Effect, len(t.Effects))
		for i, eff := range t.Effects {
			if eff.TriggerID != nil {
				id := *eff.TriggerID
				eff.TriggerID = &id
			}
			eff.Attributes = maps.Clone(eff.Attributes)
			c.Effects[i] = eff
		}
	}
	return &c
}

// AddScriptCall appends a script-call condition carrying code.
func (t *Trigger) AddScriptCall(code string) {
	t.Conditions = append(t.Conditions, Condition{
		Type:       ConditionScriptCall,
		XSFunction: code,
	})
}

// TargetsTrigger returns an effect that references the trigger with the given ID.
func TargetsTrigger(effectType string, id int) Effect {
	return Effect{Type: effectType, TriggerID: &id}
}

// remapRefs rewrites every trigger reference held by t's effects.
func (t *Trigger) remapRefs(remap func(old int) int) {
	for i := range t.Effects {
		ref := t.Effects[i].TriggerID
		if ref == nil {
			continue
		}
		next := remap(*ref)
		t.Effects[i].TriggerID = &next
	}
}
