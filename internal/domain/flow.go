package domain

import (
	"strconv"
	"strings"
)

// FlowCount is the number of flow slots a document offers
const FlowCount = 10

// Keys used in the host's key/value stores
const (
	FlowNamesKey = "FLOW-SHOW-NAME-ARRAY" // document scoped, comma-joined names
	FlowTagKey   = "show-flow"            // connector scoped, the flow tag
)

// TagAll selects every connector regardless of its tag
const TagAll = "all"

// FlowState is the flow classification of the current selection:
// a concrete tag, FlowMixed or FlowNone.
type FlowState string

const (
	FlowNone  FlowState = "NONE"
	FlowMixed FlowState = "MIXED"
)

// DefaultFlowName returns the placeholder name of the flow at index i (0-based)
func DefaultFlowName(i int) string {
	return "Flow " + strconv.Itoa(i+1)
}

// DefaultFlowNames returns "Flow 1" through "Flow 10"
func DefaultFlowNames() []string {
	names := make([]string, FlowCount)
	for i := range names {
		names[i] = DefaultFlowName(i)
	}
	return names
}

// ResolveFlowNames turns the persisted comma-joined value into FlowCount names.
//
// A value that splits into exactly FlowCount parts is returned as-is, empty
// parts included. An absent value yields the defaults. Anything else is laid
// over the defaults, keeping the default wherever the stored part is empty.
// Parts beyond FlowCount are dropped.
func ResolveFlowNames(saved string, ok bool) []string {
	parts := strings.Split(saved, ",")
	if len(parts) == FlowCount {
		return parts
	}
	if !ok {
		return DefaultFlowNames()
	}

	names := DefaultFlowNames()
	for i, part := range parts {
		if i >= FlowCount {
			break
		}
		if part != "" {
			names[i] = part
		}
	}
	return names
}

// JoinFlowNames produces the persisted form of names.
// Names containing commas are not escaped and will not round-trip.
func JoinFlowNames(names []string) string {
	return strings.Join(names, ",")
}

// ClassifyFlow derives the selection's flow state from the tags of the
// selected connectors. Empty tags must already be filtered out.
//
// With no tags at all the previous state is returned unchanged.
func ClassifyFlow(tags []string, previous FlowState) FlowState {
	if len(tags) == 0 {
		return previous
	}
	first := tags[0]
	for _, t := range tags[1:] {
		if t != first {
			return FlowMixed
		}
	}
	return FlowState(first)
}
