package domain

import (
	"encoding/json"
	"testing"
)

func TestFlexIntAcceptsNumbersAndStrings(t *testing.T) {
	cases := map[string]int{
		`3`:      3,
		`"12"`:   12,
		`" 7 "`:  7,
		`null`:   0,
		`""`:     0,
		`4.0`:    4,
		`"-1"`:   -1,
		`"0001"`: 1,
	}
	for raw, want := range cases {
		var got FlexInt
		if err := json.Unmarshal([]byte(raw), &got); err != nil {
			t.Fatalf("unmarshal %s: unexpected error %v", raw, err)
		}
		if got.Int() != want {
			t.Fatalf("unmarshal %s: expected %d, got %d", raw, want, got.Int())
		}
	}
}

func TestFlexIntRejectsGarbage(t *testing.T) {
	var got FlexInt
	if err := json.Unmarshal([]byte(`"season one"`), &got); err == nil {
		t.Fatal("expected error for non-numeric string")
	}
	if err := json.Unmarshal([]byte(`true`), &got); err == nil {
		t.Fatal("expected error for boolean")
	}
}
