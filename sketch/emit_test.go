package sketch

import "testing"

func TestCall(t *testing.T) {
	if got := Call("add", 2); got != "add(x_1, x_2)" {
		t.Errorf("Expected add(x_1, x_2), got %s", got)
	}
	if got := Call("now", 0); got != "now()" {
		t.Errorf("Expected now(), got %s", got)
	}
}

func TestEmit(t *testing.T) {
	arities := map[string]int{"add": 2, "itoa": 1}
	calls := Emit([]string{"add", "itoa"}, arities)

	want := []string{"add(x_1, x_2)", "itoa(x_1)"}
	if len(calls) != len(want) {
		t.Fatalf("Expected %d calls, got %d", len(want), len(calls))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("Call[%d]: expected %s, got %s", i, want[i], calls[i])
		}
	}
}

func TestRender(t *testing.T) {
	arities := map[string]int{"add": 2, "itoa": 1}
	got := Render([]string{"add", "itoa"}, arities)
	want := "add(x_1, x_2)\nitoa(x_1)"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestEmitUnknownArity(t *testing.T) {
	calls := Emit([]string{"mystery"}, nil)
	if calls[0] != "mystery()" {
		t.Errorf("Unknown component should render without arguments, got %s", calls[0])
	}
}
