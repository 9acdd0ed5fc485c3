package value

import "testing"

func TestParseScalars(t *testing.T) {
	if v, err := Parse(`42`); err != nil || v != int64(42) {
		t.Errorf("expected int64 42, got %#v (%v)", v, err)
	}
	if v, err := Parse(`3.5`); err != nil || v != 3.5 {
		t.Errorf("expected 3.5, got %#v (%v)", v, err)
	}
	if v, err := Parse(`"hi"`); err != nil || v != "hi" {
		t.Errorf("expected \"hi\", got %#v (%v)", v, err)
	}
	if v, err := Parse(`null`); err != nil || v != nil {
		t.Errorf("expected nil, got %#v (%v)", v, err)
	}
	if v, err := Parse(`true`); err != nil || v != true {
		t.Errorf("expected true, got %#v (%v)", v, err)
	}
}

func TestParsePreservesKeyOrder(t *testing.T) {
	v, err := Parse(`{"z": 1, "a": {"inner": [1, 2.5, "x"]}, "m": null}`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	obj, ok := v.(*Object)
	if !ok {
		t.Fatalf("expected *Object, got %T", v)
	}
	keys := obj.Keys()
	want := []string{"z", "a", "m"}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("expected key order %v, got %v", want, keys)
		}
	}

	out, err := Stringify(obj)
	if err != nil {
		t.Fatalf("Stringify failed: %v", err)
	}
	wantJSON := `{"z":1,"a":{"inner":[1,2.5,"x"]},"m":null}`
	if out != wantJSON {
		t.Errorf("expected %s, got %s", wantJSON, out)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(`{"a":`); err == nil {
		t.Error("truncated document must error")
	}
	if _, err := Parse(`1 2`); err == nil {
		t.Error("trailing content must error")
	}
	if _, err := Parse(`not json`); err == nil {
		t.Error("garbage must error")
	}
}

func TestStringifyEmptyList(t *testing.T) {
	out, err := Stringify(NewList())
	if err != nil || out != "[]" {
		t.Errorf("expected [], got %q (%v)", out, err)
	}
}

func TestStringifyIndent(t *testing.T) {
	o := NewObject()
	o.Set("a", int64(1))
	out, err := StringifyIndent(o)
	if err != nil {
		t.Fatalf("StringifyIndent failed: %v", err)
	}
	want := "{\n  \"a\": 1\n}"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}
