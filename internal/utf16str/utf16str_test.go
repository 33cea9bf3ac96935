package utf16str

import "testing"

func TestFromUTF8RoundTrip(t *testing.T) {
	cases := []string{"", "hello", "かわいい", "a😀b"}
	for _, c := range cases {
		if got := FromUTF8(c).String8(); got != c {
			t.Errorf("round trip %q: got %q", c, got)
		}
	}
}

func TestAppend(t *testing.T) {
	got := FromUTF8("foo").Append(FromUTF8("bar"))
	if got.String8() != "foobar" {
		t.Errorf("expected %q, got %q", "foobar", got.String8())
	}
}

func TestEqual(t *testing.T) {
	if !Equal(FromUTF8("abc"), FromUTF8("abc")) {
		t.Errorf("expected equal strings to compare equal")
	}
	if Equal(FromUTF8("abc"), FromUTF8("abd")) {
		t.Errorf("expected different strings to compare unequal")
	}
	if Equal(FromUTF8("abc"), FromUTF8("ab")) {
		t.Errorf("expected different-length strings to compare unequal")
	}
}

func TestHasPrefix(t *testing.T) {
	if !HasPrefix(FromUTF8("hello world"), FromUTF8("hello")) {
		t.Errorf("expected prefix match")
	}
	if HasPrefix(FromUTF8("hi"), FromUTF8("hello")) {
		t.Errorf("expected no prefix match when prefix is longer")
	}
}

func TestJoin(t *testing.T) {
	parts := []String{FromUTF8("a"), FromUTF8("b"), FromUTF8("c")}
	got := Join(parts, FromUTF8(":"))
	if got.String8() != "a:b:c" {
		t.Errorf("expected %q, got %q", "a:b:c", got.String8())
	}
	if Join(nil, FromUTF8(":")).String8() != "" {
		t.Errorf("expected empty join of no parts")
	}
}

func TestLess(t *testing.T) {
	if !Less(FromUTF8("a"), FromUTF8("b")) {
		t.Errorf("expected 'a' < 'b'")
	}
	if Less(FromUTF8("b"), FromUTF8("a")) {
		t.Errorf("expected 'b' not < 'a'")
	}
	if !Less(FromUTF8("ab"), FromUTF8("abc")) {
		t.Errorf("expected shorter prefix to sort first")
	}
}
