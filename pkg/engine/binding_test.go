package engine

import "testing"

func TestCheckAndUpdateBinding(t *testing.T) {
	m := map[string]int{"a": 1}
	s := []int{1, 2}

	tests := []struct {
		name    string
		initial []any
		index   int
		value   any
		want    bool
	}{
		{"first write on empty", nil, 0, "x", true},
		{"index equals length", []any{"a"}, 1, "b", true},
		{"nil at index equals length", []any{"a"}, 1, nil, true},
		{"sparse write", nil, 3, 1, true},
		{"unset slot", []any{unsetValue{}, "b"}, 0, nil, true},
		{"same string", []any{"a"}, 0, "a", false},
		{"different string", []any{"a"}, 0, "b", true},
		{"same int", []any{42}, 0, 42, false},
		{"int vs int64", []any{42}, 0, int64(42), true},
		{"nil to nil", []any{nil}, 0, nil, false},
		{"nil to value", []any{nil}, 0, "", true},
		{"same map", []any{m}, 0, m, false},
		{"equal map copy", []any{m}, 0, map[string]int{"a": 1}, true},
		{"same slice", []any{s}, 0, s, false},
		{"resliced", []any{s}, 0, s[:1], true},
		{"func", []any{func() {}}, 0, func() {}, true},
		{"equal struct", []any{struct{ A int }{1}}, 0, struct{ A int }{1}, false},
		{"non-comparable struct", []any{struct{ A []int }{s}}, 0, struct{ A []int }{s}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bindings := append([]any(nil), tt.initial...)
			if got := checkAndUpdateBinding(&bindings, tt.index, tt.value); got != tt.want {
				t.Errorf("checkAndUpdateBinding() = %v, want %v", got, tt.want)
			}
			if len(bindings) <= tt.index {
				t.Fatalf("bindings not grown: len=%d, index=%d", len(bindings), tt.index)
			}
		})
	}
}

func TestCheckAndUpdateBinding_RecordsValue(t *testing.T) {
	var bindings []any
	checkAndUpdateBinding(&bindings, 2, "v")

	if len(bindings) != 3 {
		t.Fatalf("len = %d, want 3", len(bindings))
	}
	for i := 0; i < 2; i++ {
		if _, ok := bindings[i].(unsetValue); !ok {
			t.Errorf("bindings[%d] = %v, want unset", i, bindings[i])
		}
	}
	if checkAndUpdateBinding(&bindings, 2, "v") {
		t.Error("second write of the same value reported a change")
	}
	if !checkAndUpdateBinding(&bindings, 2, "w") {
		t.Error("new value not reported as a change")
	}
	if bindings[2] != "w" {
		t.Errorf("bindings[2] = %v, want w", bindings[2])
	}
}

func TestToString(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{nil, ""},
		{"s", "s"},
		{true, "true"},
		{false, "false"},
		{7, "7"},
		{int64(-3), "-3"},
		{1.5, "1.5"},
		{Create | Update, "Create|Update"},
		{[]int{1}, "[1]"},
	}
	for _, tt := range tests {
		if got := toString(tt.value); got != tt.want {
			t.Errorf("toString(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
