// internal/app/system/formschema/errortree.go
package formschema

// ErrorTree is a nested map of field errors. Leaf values are strings;
// nested documents use child ErrorTrees; list-valued fields use a map of
// element key (client id) to child ErrorTree.
type ErrorTree map[string]any

// Add records a message for a top-level field. A second message for the
// same field is dropped; the first failure wins.
func (t ErrorTree) Add(field, msg string) {
	if _, exists := t[field]; !exists {
		t[field] = msg
	}
}

// AddNested attaches a child tree to a field, replacing any prior entry.
// Empty child trees are ignored.
func (t ErrorTree) AddNested(field string, child ErrorTree) {
	if len(child) > 0 {
		t[field] = child
	}
}

// AddListElement records errors for one element of a list field, keyed by
// that element's client id.
func (t ErrorTree) AddListElement(field, key string, child ErrorTree) {
	if len(child) == 0 {
		return
	}
	byKey, ok := t[field].(map[string]ErrorTree)
	if !ok {
		byKey = map[string]ErrorTree{}
		t[field] = byKey
	}
	byKey[key] = child
}

// Empty reports whether the tree carries no errors at any depth.
func (t ErrorTree) Empty() bool {
	for _, v := range t {
		switch child := v.(type) {
		case string:
			if child != "" {
				return false
			}
		case ErrorTree:
			if !child.Empty() {
				return false
			}
		case map[string]ErrorTree:
			for _, el := range child {
				if !el.Empty() {
					return false
				}
			}
		default:
			if v != nil {
				return false
			}
		}
	}
	return true
}

// HasAnyUnder reports whether the tree has a non-empty entry under any of
// the named top-level fields. Tab error badges are computed from this.
func (t ErrorTree) HasAnyUnder(fields []string) bool {
	for _, f := range fields {
		v, ok := t[f]
		if !ok {
			continue
		}
		switch child := v.(type) {
		case string:
			if child != "" {
				return true
			}
		case ErrorTree:
			if !child.Empty() {
				return true
			}
		case map[string]ErrorTree:
			for _, el := range child {
				if !el.Empty() {
					return true
				}
			}
		default:
			if v != nil {
				return true
			}
		}
	}
	return false
}
