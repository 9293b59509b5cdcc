package money

import (
	"encoding/json"
	"testing"
)

func TestArithmeticStaysExact(t *testing.T) {
	// 0.1 + 0.2 is the classic float trap.
	got := MustParse("0.1").Add(MustParse("0.2"))
	if !got.Equal(MustParse("0.3")) {
		t.Fatalf("0.1 + 0.2 = %s, want 0.3", got)
	}

	// Repeated additions must not drift.
	total := Zero
	for i := 0; i < 1000; i++ {
		total = total.Add(MustParse("0.0001"))
	}
	if !total.Equal(MustParse("0.1")) {
		t.Fatalf("1000 * 0.0001 = %s, want 0.1", total)
	}
}

func TestDivZeroGuard(t *testing.T) {
	if _, ok := MustParse("500").DivFloat(0); ok {
		t.Fatal("DivFloat by zero reported ok")
	}
	if _, ok := MustParse("500").Div(Zero); ok {
		t.Fatal("Div by zero reported ok")
	}

	got, ok := MustParse("500").DivFloat(200)
	if !ok || !got.Equal(MustParse("2.5")) {
		t.Fatalf("500 / 200 = %s ok=%v, want 2.5", got, ok)
	}
}

func TestRounding(t *testing.T) {
	got, _ := MustParse("1").DivFloat(3)
	if got.String() != "0.3333" {
		t.Fatalf("1/3 internal = %s, want 0.3333", got)
	}
	if got.Display() != "0.33" {
		t.Fatalf("1/3 display = %s, want 0.33", got.Display())
	}
}

func TestJSONRoundTrip(t *testing.T) {
	in := MustParse("80.5")
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"80.5000"` {
		t.Fatalf("marshal = %s", b)
	}

	var out Money
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	if !out.Equal(in) {
		t.Fatalf("round trip = %s, want %s", out, in)
	}

	// Clients may still send bare numbers.
	if err := json.Unmarshal([]byte(`12.75`), &out); err != nil {
		t.Fatal(err)
	}
	if !out.Equal(MustParse("12.75")) {
		t.Fatalf("numeric unmarshal = %s", out)
	}
}

func TestSum(t *testing.T) {
	got := Sum(MustParse("1.11"), MustParse("2.22"), MustParse("3.33"))
	if !got.Equal(MustParse("6.66")) {
		t.Fatalf("sum = %s, want 6.66", got)
	}
	if !Sum().Equal(Zero) {
		t.Fatal("empty sum is not zero")
	}
}
