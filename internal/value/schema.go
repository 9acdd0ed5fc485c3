package value

import "sync"

// The schema registry maps type names to template trees. JsonNew
// instantiates a deep copy of the template so script mutations never leak
// back into it.

var (
	schemaMu sync.RWMutex
	schemas  = make(map[string]Value)
)

// RegisterSchema binds a template tree to a schema name, replacing any
// previous template with that name.
func RegisterSchema(name string, template Value) {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	schemas[name] = template
}

// NewBySchema instantiates a registered schema. Unknown names fall back to
// an empty mapping rather than failing.
func NewBySchema(name string) Value {
	schemaMu.RLock()
	tpl, ok := schemas[name]
	schemaMu.RUnlock()
	if !ok {
		return NewObject()
	}
	return Clone(tpl)
}
