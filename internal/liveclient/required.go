package liveclient

import (
	"bytes"
	"encoding"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// findMissing walks the static type behind target alongside the parsed text
// and reports the first required field that is absent or null. An absent
// field is reported at the closing brace of the object that lacks it.
func findMissing(target any, text []byte) (*missingFieldError, bool) {
	doc := gjson.ParseBytes(text)
	if !doc.IsObject() && !doc.IsArray() {
		return nil, false
	}
	// gjson keeps the root's raw text from its opening brace onward, and every
	// Index below it counts from there.
	base := len(text) - len(bytes.TrimLeft(text, " \t\r\n"))
	t := reflect.TypeOf(target).Elem()
	return walk(t, doc, base, "")
}

// walk checks node. base is the byte offset of the root's opening brace.
func walk(t reflect.Type, node gjson.Result, base int, path string) (*missingFieldError, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if custom(t) {
		return nil, false
	}
	switch t.Kind() {
	case reflect.Struct:
		if !node.IsObject() {
			return nil, false
		}
		return walkStruct(t, node, base, path)
	case reflect.Slice, reflect.Array:
		if !node.IsArray() || !containsStruct(t.Elem()) {
			return nil, false
		}
		n := int(node.Get("#").Int())
		for i := 0; i < n; i++ {
			el := node.Get(strconv.Itoa(i))
			if miss, ok := walk(t.Elem(), el, base, path+"["+strconv.Itoa(i)+"]"); ok {
				return miss, true
			}
		}
	}
	return nil, false
}

func walkStruct(t reflect.Type, node gjson.Result, base int, path string) (*missingFieldError, bool) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, optional, skip := jsonName(f)
		if skip {
			continue
		}
		child := node.Get(name)
		switch {
		case !child.Exists():
			if optional {
				continue
			}
			return &missingFieldError{path: path, field: name, offset: closingBrace(node, base)}, true
		case child.Type == gjson.Null:
			if optional || f.Type.Kind() == reflect.Pointer {
				continue
			}
			return &missingFieldError{path: path, field: name, null: true, offset: offset(node, child, base)}, true
		}
		if miss, ok := walk(f.Type, child, base, join(path, name)); ok {
			return miss, true
		}
	}
	return nil, false
}

// jsonName mirrors encoding/json's tag rules for the subset used by schema.
func jsonName(f reflect.StructField) (name string, optional, skip bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	for _, o := range strings.Split(opts, ",") {
		if o == "omitempty" || o == "omitzero" {
			optional = true
		}
	}
	return name, optional, false
}

func custom(t reflect.Type) bool {
	pt := reflect.PointerTo(t)
	return t.Implements(jsonUnmarshalerType) || pt.Implements(jsonUnmarshalerType) ||
		t.Implements(textUnmarshalerType) || pt.Implements(textUnmarshalerType)
}

func containsStruct(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct || t.Kind() == reflect.Slice
}

// offset returns the absolute position of child. Result.Get already adds the
// parent's Index, so child.Index counts from the root. gjson uses 0 for
// "unknown", in which case the parent's position is the best we have.
func offset(parent, child gjson.Result, base int) int {
	if child.Index <= 0 {
		return base + parent.Index
	}
	return base + child.Index
}

func closingBrace(node gjson.Result, base int) int {
	raw := strings.TrimRight(node.Raw, " \t\r\n")
	if raw == "" {
		return base + node.Index
	}
	return base + node.Index + len(raw) - 1
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
