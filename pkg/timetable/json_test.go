package timetable

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/weekgrid/pkg/clock"
)

func TestMarshalResultShape(t *testing.T) {
	r := mustCompile(t, weekDoc())
	data, err := MarshalResultIndent(r)
	if err != nil {
		t.Fatalf("MarshalResultIndent() error: %v", err)
	}

	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	for _, key := range []string{"start", "end", "start_minute", "end_minute", "interval", "days", "rows", "summary"} {
		if _, ok := generic[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if generic["start"] != "08:00 AM" || generic["end"] != "11:00 AM" {
		t.Errorf("start/end = %v/%v", generic["start"], generic["end"])
	}

	rows := generic["rows"].([]any)
	inv := rows[8].(map[string]any)
	if inv["kind"] != "invariant" || inv["block"] != "Recess" {
		t.Errorf("row 8 = %v, want the Recess invariant", inv)
	}
	first := rows[0].(map[string]any)
	cells := first["cells"].(map[string]any)
	if _, ok := cells["Monday"]; !ok {
		t.Errorf("row 0 cells = %v, want a Monday entry", cells)
	}
	if strings.Contains(string(data), `"Wednesday"`+":") {
		t.Error("empty day columns should be omitted from cells")
	}
}

func TestResultRoundTrip(t *testing.T) {
	r := mustCompile(t, weekDoc())
	data, err := MarshalResult(r)
	if err != nil {
		t.Fatalf("MarshalResult() error: %v", err)
	}
	got, err := UnmarshalResult(data)
	if err != nil {
		t.Fatalf("UnmarshalResult() error: %v", err)
	}
	if !reflect.DeepEqual(got, r) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, r)
	}
	if got.Grid.Days[0] != clock.Monday {
		t.Errorf("Days[0] = %v", got.Grid.Days[0])
	}
}

func TestUnmarshalResultErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"unknown day", `{"days": ["Sunday"]}`},
		{"unknown kind", `{"rows": [{"kind": "lunch"}]}`},
		{"bad cell day", `{"rows": [{"kind": "time", "cells": {"Caturday": {"block": "x"}}}]}`},
		{"null cell", `{"rows": [{"kind": "time", "cells": {"Monday": null}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalResult([]byte(tt.data)); err == nil {
				t.Error("UnmarshalResult() expected error")
			}
		})
	}
}
