package store

import "testing"

func TestAsInt(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int
	}{
		{int64(42), 42},
		{7, 7},
		{float64(3), 3},
		{nil, 0},
		{"12", 0},
	}

	for _, tc := range cases {
		if got := asInt(tc.in); got != tc.want {
			t.Errorf("asInt(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestAsIntSlice(t *testing.T) {
	got := asIntSlice([]interface{}{int64(1), int64(2), int64(3)})
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("unexpected slice %v", got)
	}

	if asIntSlice("not a list") != nil {
		t.Error("expected nil for a non-list value")
	}
}

func TestAsString(t *testing.T) {
	if got := asString("room 101"); got != "room 101" {
		t.Errorf("unexpected %q", got)
	}
	if got := asString(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
