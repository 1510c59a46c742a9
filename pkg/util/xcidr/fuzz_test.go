package xcidr

import (
	"errors"
	"strconv"
	"testing"
)

// =============================================================================
// CIDR 解析模糊测试
// =============================================================================

func FuzzParse(f *testing.F) {
	f.Add("2001:0db8:85a3:08d3::0370:7334/64")
	f.Add("::/0")
	f.Add("::1/128")
	f.Add("2001:0db8:85a3:::0370:7334/64")
	f.Add("2001:db8::/131")
	f.Add("fe80::1%eth0/64")
	f.Add("::ffff:1.2.3.4/96")
	f.Add("1:2:3:4:5:6:7::/7")

	f.Fuzz(func(t *testing.T, s string) {
		c, err := Parse(s)
		if err != nil {
			if !errors.Is(err, ErrMalformedCIDR) && !errors.Is(err, ErrInvalidAddress) &&
				!errors.Is(err, ErrInvalidPrefixLength) {
				t.Fatalf("Parse(%q) returned unclassified error: %v", s, err)
			}
			return
		}
		expanded := c.Expanded()
		if len(expanded) != 39 {
			t.Fatalf("Parse(%q).Expanded() = %q, want 39 characters", s, expanded)
		}
		back, err := Expand(c.Condensed())
		if err != nil {
			t.Fatalf("Expand(Condensed(%q)) failed: %v", s, err)
		}
		if back != expanded {
			t.Errorf("round-trip mismatch: %q → %q → %q", expanded, c.Condensed(), back)
		}
		start, end := c.HostRange()
		sv, err := ExpandedToBigInt(start)
		if err != nil {
			t.Fatalf("range start %q invalid: %v", start, err)
		}
		ev, err := ExpandedToBigInt(end)
		if err != nil {
			t.Fatalf("range end %q invalid: %v", end, err)
		}
		if sv.Cmp(ev) > 0 {
			t.Errorf("start %q > end %q for %q", start, end, s)
		}
		again, err := Parse(c.Condensed() + "/" + strconv.Itoa(c.Bits()))
		if err != nil {
			t.Fatalf("re-parse of %q failed: %v", c.Condensed(), err)
		}
		if again.Expanded() != expanded {
			t.Errorf("re-parse mismatch: %q vs %q", again.Expanded(), expanded)
		}
	})
}

// =============================================================================
// 展开/压缩模糊测试
// =============================================================================

func FuzzExpandCondense(f *testing.F) {
	f.Add("::")
	f.Add("2001:db8::1")
	f.Add("0:0:85a3::db8:8d3")
	f.Add("1:::2")
	f.Add(":1::")

	f.Fuzz(func(t *testing.T, s string) {
		expanded, err := Expand(s)
		if err != nil {
			if !errors.Is(err, ErrInvalidAddress) {
				t.Fatalf("Expand(%q) returned unclassified error: %v", s, err)
			}
			return
		}
		again, err := Expand(expanded)
		if err != nil || again != expanded {
			t.Fatalf("Expand not idempotent for %q: %q, %q, %v", s, expanded, again, err)
		}
		condensed, err := Condense(expanded)
		if err != nil {
			t.Fatalf("Condense(%q) failed: %v", expanded, err)
		}
		back, err := Expand(condensed)
		if err != nil || back != expanded {
			t.Fatalf("round-trip mismatch: %q → %q → %q (%v)", expanded, condensed, back, err)
		}
	})
}
