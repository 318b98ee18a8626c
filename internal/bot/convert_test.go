package bot

import "testing"

func TestRawToDisplay(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"2000000000000000000000000", "2"},
		{"0", "0"},
		{"999999999999999999999999", "0"},
		{"1000000000000000000000000", "1"},
		{"123450000000000000000000000", "123"},
	}
	for _, tc := range cases {
		got, err := RawToDisplay(tc.raw)
		if err != nil {
			t.Fatalf("convert %q: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("convert %q: expected %q got %q", tc.raw, tc.want, got)
		}
	}
}

func TestRawToDisplayRejectsNonNumeric(t *testing.T) {
	for _, raw := range []string{"", "abc", "12.5", "-1"} {
		if _, err := RawToDisplay(raw); err == nil {
			t.Fatalf("expected error converting %q", raw)
		}
	}
}

func TestConversionRoundTrip(t *testing.T) {
	for _, display := range []string{"1", "2", "10", "123456789", "340282366920938463463374607431768211455"} {
		raw, err := DisplayToRaw(display)
		if err != nil {
			t.Fatalf("display to raw %q: %v", display, err)
		}
		back, err := RawToDisplay(raw)
		if err != nil {
			t.Fatalf("raw to display %q: %v", raw, err)
		}
		if back != display {
			t.Fatalf("round trip %q: got %q via %q", display, back, raw)
		}
	}
}
