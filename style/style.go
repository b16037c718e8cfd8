/*
Package style implements the layout core's style computer (spec.md
§4.2): resolving an element's cascaded property declarations into
specified, then computed, values, stage by stage and with proper
CSS inheritance.

The computer is deliberately not a full cascade engine — that stage is
assumed already run by the embedding application (spec.md §1, §6.2) —
it only performs the specified/computed-value resolution a cascade
hands off: keyword-sentinel substitution (initial/inherit/unset/
undeclared), the `all` shorthand, and inherited lookup memoized per
(stage, node, group).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/vizbox/env"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Stage is one of the two passes the computer is consulted for
// (spec.md §4.2).
type Stage uint8

const (
	BoxGen Stage = iota
	Cosmetic
)

// Value is a resolved field: group → field name → value string, with
// every keyword sentinel already replaced.
type Value map[string]string

type nodeSlot struct {
	values map[env.GroupTag]Value
}

// Computer is the style computer. One Computer is created per Layout
// run and consulted once per element during box generation and again
// during the cosmetic pass; the two stages keep independent caches
// since a field resolved differently by each (e.g. insets percentages
// against a now-known containing block) must not be confused.
type Computer struct {
	env     env.Environment
	slots   [2]map[env.NodeID]*nodeSlot
	current [2]env.NodeID
}

// NewComputer returns a Computer borrowing the given environment for
// the lifetime of one Layout run.
func NewComputer(e env.Environment) *Computer {
	return &Computer{
		env: e,
		slots: [2]map[env.NodeID]*nodeSlot{
			make(map[env.NodeID]*nodeSlot),
			make(map[env.NodeID]*nodeSlot),
		},
	}
}

// SetCurrentNode initializes node's slot lazily for stage and makes its
// cascaded values the resolution source for subsequent
// GetSpecifiedValue/SetComputedValue calls (spec.md §4.2).
func (c *Computer) SetCurrentNode(stage Stage, node env.NodeID) {
	m := c.slots[stage]
	if _, ok := m[node]; !ok {
		m[node] = &nodeSlot{values: make(map[env.GroupTag]Value)}
	}
	c.current[stage] = node
}

// GetSpecifiedValue resolves the current node's specified value for
// group, per spec.md §4.2's four-step algorithm.
func (c *Computer) GetSpecifiedValue(stage Stage, group env.GroupTag) Value {
	node := c.current[stage]
	schema := env.Schemas[group]
	cascaded := c.env.Node(node).Cascaded

	allSentinel, hasAll := c.allFallback(cascaded)
	defaultFallback := c.defaultFallback(allSentinel, hasAll, schema)

	cg, ok := cascaded.Group(group)
	if !ok {
		if defaultFallback == env.InheritKeyword {
			return c.inherited(stage, node, group)
		}
		return cloneInitial(schema)
	}

	out := make(Value, len(schema.Initial))
	for field, initial := range schema.Initial {
		cf, declared := cg[field]
		sentinel := env.UndeclaredKeyword
		value := initial
		if declared {
			sentinel = cf.Sentinel
			value = cf.Value
		}
		switch sentinel {
		case env.Declared:
			out[field] = value
		case env.InitialKeyword:
			out[field] = initial
		case env.InheritKeyword:
			out[field] = c.inheritedField(stage, node, group, field, initial)
		case env.UnsetKeyword:
			out[field] = c.resolveByClass(stage, node, group, field, initial, schema)
		case env.UndeclaredKeyword:
			out[field] = c.resolveByFallback(stage, node, group, field, initial, defaultFallback, schema)
		}
	}
	return out
}

// allFallback reports the cascaded `all` keyword, if any, excluding the
// direction/unicode-bidi/custom-property exemption (this core defines
// no such groups, so the exemption never triggers).
func (c *Computer) allFallback(cascaded env.CascadedValues) (env.Sentinel, bool) {
	if cascaded.All == nil {
		return 0, false
	}
	return cascaded.All.Sentinel, true
}

func (c *Computer) defaultFallback(allSentinel env.Sentinel, hasAll bool, schema env.GroupSchema) env.Sentinel {
	if hasAll {
		switch allSentinel {
		case env.InitialKeyword:
			return env.InitialKeyword
		case env.InheritKeyword:
			return env.InheritKeyword
		}
	}
	if schema.Inheritance == env.Inherited {
		return env.InheritKeyword
	}
	return env.InitialKeyword
}

func (c *Computer) resolveByClass(stage Stage, node env.NodeID, group env.GroupTag, field, initial string, schema env.GroupSchema) string {
	if schema.Inheritance == env.Inherited {
		return c.inheritedField(stage, node, group, field, initial)
	}
	return initial
}

func (c *Computer) resolveByFallback(stage Stage, node env.NodeID, group env.GroupTag, field, initial string, fallback env.Sentinel, schema env.GroupSchema) string {
	if fallback == env.InheritKeyword {
		return c.inheritedField(stage, node, group, field, initial)
	}
	return initial
}

// cloneInitial returns a fresh copy of a group's initial-values map.
func cloneInitial(schema env.GroupSchema) Value {
	out := make(Value, len(schema.Initial))
	for k, v := range schema.Initial {
		out[k] = v
	}
	return out
}

// SetComputedValue stores the resolved computed value in node's slot.
// Asserts it was previously empty (spec.md §4.2, §7's "setting a
// computed value twice" programmer error).
func (c *Computer) SetComputedValue(stage Stage, group env.GroupTag, value Value) {
	node := c.current[stage]
	slot := c.slots[stage][node]
	if _, ok := slot.values[group]; ok {
		panic("style: computed value set twice for the same node and group")
	}
	slot.values[group] = value
}

// CommitNode is a no-op beyond what SetComputedValue already did: the
// slot map *is* the per-stage map, so there is nothing further to write
// back. It exists to mirror spec.md §4.2's `commit_node` call shape for
// callers that treat it as a scope boundary.
func (c *Computer) CommitNode(stage Stage) {}

// inherited is the memoized "computed value of group G at element E"
// lookup: it walks up the parent chain, synthesizing the value by
// recursively resolving and committing ancestors whose slot is empty.
func (c *Computer) inherited(stage Stage, node env.NodeID, group env.GroupTag) Value {
	parent, ok := c.env.Parent(node)
	if !ok {
		return cloneInitial(env.Schemas[group])
	}
	if slot, ok := c.slots[stage][parent]; ok {
		if v, ok := slot.values[group]; ok {
			return v
		}
	}
	saved := c.current[stage]
	c.SetCurrentNode(stage, parent)
	v := c.GetSpecifiedValue(stage, group)
	c.SetComputedValue(stage, group, v)
	c.current[stage] = saved
	return v
}

func (c *Computer) inheritedField(stage Stage, node env.NodeID, group env.GroupTag, field, fallback string) string {
	v := c.inherited(stage, node, group)
	if s, ok := v[field]; ok {
		return s
	}
	return fallback
}
