package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

var ErrNotStruct = errors.New("querybuilder: model must be a non-nil struct")

type field struct {
	column    string
	index     []int
	omitEmpty bool
}

// plans caches the column layout of each row type.
var plans sync.Map // reflect.Type -> []field

// Columns lists the `db` columns of a row type in declaration order, flattening embedded structs.
func Columns(model any) ([]string, error) {
	v, err := structValue(model)
	if err != nil {
		return nil, err
	}
	fields := planFor(v.Type())
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.column
	}
	return out, nil
}

// MustColumns is Columns for package-level row declarations.
func MustColumns(model any) []string {
	cols, err := Columns(model)
	if err != nil {
		panic(err)
	}
	return cols
}

// InsertModel builds an INSERT from the `db` tags of a struct value.
// Fields tagged omitempty are left out when they hold their zero value.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	v, err := structValue(model)
	if err != nil {
		return "", nil, err
	}

	b := InsertInto(table).Suffix(suffix)
	for _, f := range planFor(v.Type()) {
		fv := v.FieldByIndex(f.index)
		if f.omitEmpty && fv.IsZero() {
			continue
		}
		b.columns = append(b.columns, f.column)
		b.values = append(b.values, fv.Interface())
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("%s has no db columns", v.Type())
	}
	return b.ToSQL()
}

func structValue(model any) (reflect.Value, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, ErrNotStruct
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: got %s", ErrNotStruct, v.Kind())
	}
	return v, nil
}

func planFor(t reflect.Type) []field {
	if cached, ok := plans.Load(t); ok {
		return cached.([]field)
	}
	fields := collect(t, nil)
	actual, _ := plans.LoadOrStore(t, fields)
	return actual.([]field)
}

func collect(t reflect.Type, parent []int) []field {
	var out []field
	for i := range t.NumField() {
		sf := t.Field(i)
		index := append(append([]int(nil), parent...), i)
		tag, hasTag := sf.Tag.Lookup("db")

		if sf.Anonymous && !hasTag && sf.Type.Kind() == reflect.Struct {
			out = append(out, collect(sf.Type, index)...)
			continue
		}
		if !sf.IsExported() {
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		out = append(out, field{
			column:    name,
			index:     index,
			omitEmpty: strings.Contains(opts, "omitempty"),
		})
	}
	return out
}
