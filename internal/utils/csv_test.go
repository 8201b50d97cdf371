package utils

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

type row struct {
	Name    string   `csv:"name"`
	Tags    []string `csv:"tags"`
	Score   *float64 `csv:"score"`
	Skipped string   `csv:"-"`
	Plain   int
	hidden  string
}

func TestStructToCsvHeader(t *testing.T) {
	got := StructToCsvHeader(reflect.TypeOf(row{}))
	want := []string{"name", "tags", "score", "Plain"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if ptr := StructToCsvHeader(reflect.TypeOf(&row{})); !reflect.DeepEqual(ptr, want) {
		t.Errorf("pointer type should give same headers, got %v", ptr)
	}
}

func TestWriteCsv(t *testing.T) {
	score := 0.25
	data := []row{
		{Name: "a, b", Tags: []string{"x", "y"}, Score: &score, Plain: 3, hidden: "no"},
		{Name: "c"},
	}

	var buf bytes.Buffer
	if err := WriteCsv(&buf, StructToCsvHeader(reflect.TypeOf(row{})), data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "name,tags,score,Plain" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != `"a, b",x;y,0.25,3` {
		t.Errorf("unexpected row %q", lines[1])
	}
	if lines[2] != "c,,,0" {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestWriteCsv_RejectsNonStructs(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCsv(&buf, []string{"x"}, []int{1}); err == nil {
		t.Error("expected error for non-struct data")
	}
}
