package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModels builds a single multi-row INSERT for a slice of structs tagged
// with `db` column names. All models must share the same concrete type.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("insert models are required")
	}

	cols, err := modelColumns(models[0])
	if err != nil {
		return "", nil, err
	}

	builder := InsertInto(table).Columns(cols...)
	for i := range models {
		vals, err := modelValues(models[i], len(cols))
		if err != nil {
			return "", nil, err
		}
		builder.Values(vals...)
	}

	return builder.Suffix(suffix).ToSQL()
}

func modelColumns(model any) ([]string, error) {
	value, err := structValue(model)
	if err != nil {
		return nil, err
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		col := columnFromTag(field.Tag.Get("db"))
		if col == "" {
			continue
		}
		cols = append(cols, col)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("model has no db columns")
	}
	return cols, nil
}

func modelValues(model any, want int) ([]any, error) {
	value, err := structValue(model)
	if err != nil {
		return nil, err
	}

	typ := value.Type()
	vals := make([]any, 0, want)
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}
		if columnFromTag(field.Tag.Get("db")) == "" {
			continue
		}
		vals = append(vals, value.Field(i).Interface())
	}
	return vals, nil
}

func structValue(model any) (reflect.Value, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return reflect.Value{}, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("model must be a struct")
	}
	return value, nil
}

func columnFromTag(tag string) string {
	col := strings.TrimSpace(strings.Split(tag, ",")[0])
	if col == "-" {
		return ""
	}
	return col
}
