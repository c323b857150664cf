package types

import "sort"

// VariableMap maps variable names to values
type VariableMap map[string]string

// Clone returns a copy of the map
func (m VariableMap) Clone() VariableMap {
	out := make(VariableMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge copies every entry of other into m, overriding existing keys
func (m VariableMap) Merge(other VariableMap) VariableMap {
	for k, v := range other {
		m[k] = v
	}
	return m
}

// Keys returns the variable names sorted
func (m VariableMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
