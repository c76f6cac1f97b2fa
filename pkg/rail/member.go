package rail

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// memberView is the read/write surface over the enclosing context object.
// Reads resolve in this order: a MemberReader implementation, a live
// map[string]any, then a mapstructure decode of the (possibly pointed-to)
// struct. The decoded snapshot is refreshed after every mirror write so a
// later step reading the mirrored name through the fallback sees the
// fresh value.
type memberView struct {
	obj    any
	reader MemberReader
	writer MemberWriter
	fields map[string]any
	isMap  bool
}

func newMemberView(obj any) *memberView {
	v := &memberView{obj: obj}
	if IsNil(obj) {
		return v
	}

	if r, ok := obj.(MemberReader); ok {
		v.reader = r
	}
	if w, ok := obj.(MemberWriter); ok {
		v.writer = w
	}

	if m, ok := obj.(map[string]any); ok {
		v.fields = m
		v.isMap = true
		return v
	}

	if v.reader == nil {
		v.refresh()
	}
	return v
}

func (v *memberView) refresh() {
	fields := map[string]any{}
	if err := mapstructure.Decode(v.obj, &fields); err == nil {
		v.fields = fields
	}
}

func (v *memberView) member(name string) (any, bool) {
	if v.reader != nil {
		return v.reader.Member(name)
	}
	if v.fields != nil {
		val, ok := v.fields[name]
		return val, ok
	}
	return nil, false
}

func (v *memberView) setMember(name string, value any) error {
	if v.writer != nil {
		return v.writer.SetMember(name, value)
	}
	if v.isMap {
		v.fields[name] = value
		return nil
	}

	if IsNil(v.obj) {
		return fmt.Errorf("rail: cannot mirror %q: no context object", name)
	}

	rv := reflect.ValueOf(v.obj)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("rail: cannot mirror %q: context is %T, want pointer to struct, map or MemberWriter", name, v.obj)
	}

	field := rv.FieldByName(name)
	if !field.IsValid() {
		return fmt.Errorf("rail: cannot mirror %q: context %T has no such field", name, v.obj)
	}
	if !field.CanSet() {
		return fmt.Errorf("rail: cannot mirror %q: field on %T is not settable", name, v.obj)
	}

	if value == nil {
		field.Set(reflect.Zero(field.Type()))
	} else {
		fv := reflect.ValueOf(value)
		if !fv.Type().AssignableTo(field.Type()) {
			return fmt.Errorf("rail: cannot mirror %q: %s is not assignable to %s", name, fv.Type(), field.Type())
		}
		field.Set(fv)
	}

	v.refresh()
	return nil
}
