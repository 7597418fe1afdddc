// internal/app/system/diffkit/diffkit.go
package diffkit

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// HasDifferences reports whether a and b differ in any leaf field after
// null-normalization. A nil value, a missing map key, and a typed nil
// pointer all normalize to the same absent value, so {"x": nil} and {}
// compare equal. Both sides nil is not a difference.
//
// Typed values (structs) are accepted: they are round-tripped through JSON
// before comparison, so bson/json tag omissions behave the same way they do
// on the wire.
func HasDifferences(a, b any) bool {
	av, err := ToValue(a)
	if err != nil {
		return true
	}
	bv, err := ToValue(b)
	if err != nil {
		return true
	}
	return !equalNormalized(av, bv)
}

// FieldChanged reports whether one named field differs between two generic
// documents. Missing fields normalize to absent.
func FieldChanged(a, b map[string]any, field string) bool {
	return !equalNormalized(normalize(a[field]), normalize(b[field]))
}

// ToValue converts v into the generic JSON form (map[string]any, []any,
// float64, string, bool, nil) that the comparison functions operate on.
// Values already in generic form pass through a round-trip unchanged.
func ToValue(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("diffkit: encode value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("diffkit: decode value: %w", err)
	}
	return out, nil
}

// ChangeKind classifies one entry of a keyed-list diff.
type ChangeKind int

const (
	Added ChangeKind = iota + 1
	Removed
	Changed
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Changed:
		return "changed"
	}
	return "unknown"
}

// MarshalJSON renders the kind as its name so diff payloads read as
// "added"/"removed"/"changed" on the wire.
func (k ChangeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// KeyedChange is one entry of a keyed-list diff. Old and New are the
// matched elements; the one that does not apply to the kind is nil.
type KeyedChange struct {
	Key  string         `json:"key"`
	Kind ChangeKind     `json:"kind"`
	Old  map[string]any `json:"old,omitempty"`
	New  map[string]any `json:"new,omitempty"`
}

// DiffKeyedList diffs two lists of sub-records matched by the value of the
// key field, not by position. Elements present only in newList are Added,
// only in oldList are Removed, and present in both with differing fields
// are Changed. Order of the result follows newList, then removed entries in
// oldList order. Elements without the key field are skipped.
func DiffKeyedList(oldList, newList []map[string]any, key string) []KeyedChange {
	oldByKey := make(map[string]map[string]any, len(oldList))
	for _, el := range oldList {
		if k, ok := el[key].(string); ok && k != "" {
			oldByKey[k] = el
		}
	}

	var changes []KeyedChange
	seen := make(map[string]bool, len(newList))
	for _, el := range newList {
		k, ok := el[key].(string)
		if !ok || k == "" {
			continue
		}
		seen[k] = true
		old, exists := oldByKey[k]
		switch {
		case !exists:
			changes = append(changes, KeyedChange{Key: k, Kind: Added, New: el})
		case HasDifferences(old, el):
			changes = append(changes, KeyedChange{Key: k, Kind: Changed, Old: old, New: el})
		}
	}
	for _, el := range oldList {
		k, ok := el[key].(string)
		if !ok || k == "" || seen[k] {
			continue
		}
		changes = append(changes, KeyedChange{Key: k, Kind: Removed, Old: el})
	}
	return changes
}

// equalNormalized compares two generic values with nulls normalized away.
func equalNormalized(a, b any) bool {
	a, b = normalize(a), normalize(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok {
			return false
		}
		for k := range av {
			if !equalNormalized(av[k], bv[k]) {
				return false
			}
		}
		for k := range bv {
			if _, present := av[k]; !present && normalize(bv[k]) != nil {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !equalNormalized(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

// normalize maps the different spellings of "absent" onto untyped nil.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return nil
		}
	}
	return v
}
