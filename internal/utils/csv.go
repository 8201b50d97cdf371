package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
)

// StructToCsvHeader takes a struct type and returns a slice of strings representing the CSV header.
// It uses the `csv` tag on struct fields to determine the header name.
// If a field doesn't have a `csv` tag, the field name is used. Fields tagged `csv:"-"` are skipped.
func StructToCsvHeader(t reflect.Type) []string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	var headers []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := headerName(field)
		if name == "-" {
			continue
		}
		headers = append(headers, name)
	}
	return headers
}

func headerName(field reflect.StructField) string {
	if tag := field.Tag.Get("csv"); tag != "" {
		return tag
	}
	return field.Name
}

// WriteCsv writes the given headers and data as CSV to w.
// Nil pointers become empty cells and slices are joined with a semicolon (;).
func WriteCsv[T any](w io.Writer, headers []string, data []T) error {
	writer := csv.NewWriter(w)

	// Write the headers
	if err := writer.Write(headers); err != nil {
		return err
	}

	// Write the data rows
	for _, item := range data {
		row := make([]string, len(headers))
		v := reflect.ValueOf(item)

		// If item is a pointer, get the value it points to
		if v.Kind() == reflect.Ptr {
			v = v.Elem()
		}

		if v.Kind() != reflect.Struct {
			return fmt.Errorf("data must be a slice of structs")
		}

		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}

			idx := indexOf(headers, headerName(field))
			if idx < 0 {
				continue // Skip fields not in the headers
			}

			row[idx] = cellValue(v.Field(i))
		}

		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func cellValue(v reflect.Value) string {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice:
		// Join slice elements with semicolon
		var sliceValues []string
		for j := 0; j < v.Len(); j++ {
			sliceValues = append(sliceValues, fmt.Sprintf("%v", v.Index(j).Interface()))
		}
		return strings.Join(sliceValues, ";")
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// indexOf returns the index of a string in a slice or -1 if not found
func indexOf(slice []string, item string) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}
