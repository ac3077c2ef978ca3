package rdf

import "testing"

func TestEncodeDecodeObjectRoundTrip(t *testing.T) {
	cases := []any{
		"resource://user:alice",
		"plain string",
		true,
		false,
		int64(1949),
		int64(30),
		3.5,
		nil,
		map[string]any{"a": float64(1)},
		[]any{float64(1), float64(2)},
	}
	for _, v := range cases {
		canon := EncodeObject(v)
		got := DecodeObject(canon)
		if !equalJSON(got, v) {
			t.Errorf("round trip mismatch: encoded %q, got %#v, want %#v", canon, got, v)
		}
	}
}

func equalJSON(a, b any) bool {
	am, aok := a.(map[string]any)
	bm, bok := b.(map[string]any)
	if aok && bok {
		if len(am) != len(bm) {
			return false
		}
		for k, v := range am {
			if !equalJSON(v, bm[k]) {
				return false
			}
		}
		return true
	}
	as, aok2 := a.([]any)
	bs, bok2 := b.([]any)
	if aok2 && bok2 {
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !equalJSON(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	return a == b
}

func TestDecodeLiteralLadder(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"false", false},
		{"1949", int64(1949)},
		{"-3", int64(-3)},
		{"30.5", 30.5},
		{`{"x":1}`, map[string]any{"x": float64(1)}},
		{`[1,2]`, []any{float64(1), float64(2)}},
		{"hello", "hello"},
	}
	for _, tc := range tests {
		got := DecodeLiteral(tc.in)
		if !equalJSON(got, tc.want) {
			t.Errorf("DecodeLiteral(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestIsNamedNode(t *testing.T) {
	if !IsNamedNode("resource://x") {
		t.Error("expected resource:// prefix to be a named node")
	}
	if IsNamedNode("resourcex") {
		t.Error("did not expect plain string to be a named node")
	}
}

func TestPatternMatches(t *testing.T) {
	s := "user:alice"
	p := Pattern{Subject: &s}
	if !p.Matches("user:alice", "name", "Alice") {
		t.Error("expected subject-only pattern to match")
	}
	if p.Matches("user:bob", "name", "Alice") {
		t.Error("did not expect mismatched subject to match")
	}
}

func TestDecodePatternWildcards(t *testing.T) {
	p, err := DecodePattern([]byte(`{"predicate":"author"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Subject != nil || p.Object != nil {
		t.Error("expected subject and object to be wildcards")
	}
	if p.Predicate == nil || *p.Predicate != "author" {
		t.Error("expected predicate to be set")
	}
}

func TestDecodeTripleRejectsEmptySubject(t *testing.T) {
	_, err := DecodeTriple([]byte(`{"subject":"","predicate":"p","object":"o"}`))
	if err == nil {
		t.Fatal("expected error for empty subject")
	}
	var rerr *Error
	if !asError(err, &rerr) || rerr.Kind != BadArgument {
		t.Errorf("expected BadArgument, got %v", err)
	}
}

func asError(err error, target **Error) bool {
	if e, ok := err.(*Error); ok {
		*target = e
		return true
	}
	return false
}
