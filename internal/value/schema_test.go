package value

import "testing"

func TestNewBySchema(t *testing.T) {
	tpl := NewObject()
	tpl.Set("name", "")
	tpl.Set("tags", NewList())
	RegisterSchema("widget", tpl)

	v := NewBySchema("widget")
	obj, ok := v.(*Object)
	if !ok {
		t.Fatalf("expected *Object, got %T", v)
	}
	if !obj.Has("name") || !obj.Has("tags") {
		t.Error("instance missing template keys")
	}

	// Instances must not share structure with the template.
	obj.Set("name", "changed")
	if v, _ := tpl.Get("name"); v != "" {
		t.Error("template mutated through instance")
	}
}

func TestNewBySchemaUnknown(t *testing.T) {
	v := NewBySchema("no-such-schema")
	obj, ok := v.(*Object)
	if !ok {
		t.Fatalf("unknown schema must yield an empty mapping, got %T", v)
	}
	if obj.Len() != 0 {
		t.Errorf("expected empty mapping, got %d keys", obj.Len())
	}
}
