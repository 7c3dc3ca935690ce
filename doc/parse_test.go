// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package doc_test

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/creachadair/jvalue"
	"github.com/creachadair/jvalue/doc"
	"github.com/creachadair/jvalue/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  doc.Value
	}{
		{`null`, doc.Null()},
		{` true `, doc.Bool(true)},
		{`false`, doc.Bool(false)},
		{`0`, doc.Int(0)},
		{`-25`, doc.Int(-25)},
		{`9223372036854775807`, doc.Int(math.MaxInt64)},
		{`9223372036854775808`, doc.Uint(1 << 63)},
		{`18446744073709551616`, doc.Float64(18446744073709551616)},
		{`-9223372036854775809`, doc.Float64(-9223372036854775809)},
		{`1.5`, doc.Float64(1.5)},
		{`1e3`, doc.Float64(1000)},
		{`-0.0`, doc.Float64(math.Copysign(0, -1))},
		{`Infinity`, doc.Float64(math.Inf(1))},
		{`-Infinity`, doc.Float64(math.Inf(-1))},
		{`NaN`, doc.Float64(math.NaN())},
		{`"abc\n"`, doc.String("abc\n")},
		{`[]`, doc.List()},
		{`{}`, doc.Object()},
		{`[1, "x", [null]]`, doc.List(doc.Int(1), doc.String("x"), doc.List(doc.Null()))},
		{`{"a": {"b": [true]}, "": 0}`, doc.Object(
			doc.Field("a", doc.Object(doc.Field("b", doc.List(doc.Bool(true))))),
			doc.Field("", 0),
		)},
	}
	for _, test := range tests {
		d, err := doc.ParseString(test.input)
		if err != nil {
			t.Errorf("Parse %#q: unexpected error: %v", test.input, err)
			continue
		}
		if !d.IsRoot() {
			t.Errorf("Parse %#q: result is not a root", test.input)
		}
		if diff := cmp.Diff(test.want, d.Value(), equalValues); diff != "" {
			t.Errorf("Parse %#q: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input  string
		offset int
		msg    string
	}{
		{``, 0, "expected a value, got end of input"},
		{`{`, 1, `expected "}" or string, got end of input`},
		{`{"a":}`, 5, `unexpected "}"`},
		{`[15,]`, 4, `unexpected "]"`},
		{`"what did you`, 13, "unterminated string"},
		{`1 2`, 2, "unexpected integer after value"},
		{`[] x`, 3, `unknown constant "x"`},
	}
	for _, test := range tests {
		_, err := doc.ParseString(test.input)
		var serr *doc.StructuralError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %#q: got %v, want *StructuralError", test.input, err)
			continue
		}
		if !errors.Is(err, doc.ErrStructural) {
			t.Errorf("Parse %#q: error %v is not %v", test.input, err, doc.ErrStructural)
		}
		if serr.Offset != test.offset || serr.Message != test.msg {
			t.Errorf("Parse %#q: got offset %d, %q; want %d, %q",
				test.input, serr.Offset, serr.Message, test.offset, test.msg)
		}

		// The underlying syntax error carries the line and column.
		var jerr *jvalue.SyntaxError
		if !errors.As(err, &jerr) {
			t.Errorf("Parse %#q: error %v does not wrap *jvalue.SyntaxError", test.input, err)
		} else if jerr.Offset != serr.Offset {
			t.Errorf("Parse %#q: syntax offset %d != structural offset %d", test.input, jerr.Offset, serr.Offset)
		}
	}

	_, err := doc.ParseString(`[1] [2]`)
	if !errors.Is(err, jvalue.ErrExtraInput) {
		t.Errorf("Parse trailing value: got %v, want %v", err, jvalue.ErrExtraInput)
	}
}

func TestParseOptions(t *testing.T) {
	t.Run("StrictNumbers", func(t *testing.T) {
		const input = `[NaN, 1]`
		if _, err := doc.ParseString(input); err != nil {
			t.Errorf("Parse %#q: unexpected error: %v", input, err)
		}
		_, err := doc.ParseWithOptions([]byte(input), doc.Options{StrictNumbers: true})
		var serr *doc.StructuralError
		if !errors.As(err, &serr) || serr.Offset != 1 {
			t.Errorf("Parse strict %#q: got %v, want error at offset 1", input, err)
		}
	})

	t.Run("Extensions", func(t *testing.T) {
		const input = `// Leading comment.
{
  "name": "x", /* the name */
  "list": [
    1,
    2, // trailing comma
  ],
}
`
		if _, err := doc.ParseString(input); err == nil {
			t.Error("Parse with comments: got nil, want error")
		}
		got, err := doc.ParseWithOptions([]byte(input), doc.Options{
			Comments:       true,
			TrailingCommas: true,
		})
		if err != nil {
			t.Fatalf("Parse with options: %v", err)
		}

		// Cross-check against the standard form produced by hujson.
		std, err := hujson.Standardize([]byte(input))
		if err != nil {
			t.Fatalf("Standardize: %v", err)
		}
		want, err := doc.Parse(std)
		if err != nil {
			t.Fatalf("Parse standardized: %v", err)
		}
		if diff := cmp.Diff(want.Value(), got.Value(), equalValues); diff != "" {
			t.Errorf("Parse with options (-want, +got):\n%s", diff)
		}
	})
}

func TestRoundTrip(t *testing.T) {
	d, err := doc.ParseString(testutil.Sample)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	text, err := d.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if want := string(jvalue.Compact([]byte(testutil.Sample))); text != want {
		t.Errorf("JSON:\n got %s\nwant %s", text, want)
	}

	// The output is valid JSON that other parsers agree with.
	if !gjson.Valid(text) {
		t.Fatalf("Output is not valid JSON: %s", text)
	}
	if got := gjson.Get(text, "big").Uint(); got != math.MaxUint64 {
		t.Errorf("gjson big: got %d, want %d", got, uint64(math.MaxUint64))
	}
	if got := gjson.Get(text, "neg").Int(); got != math.MinInt64 {
		t.Errorf("gjson neg: got %d, want %d", got, int64(math.MinInt64))
	}
	if got := gjson.Get(text, "nested.list.1.1.0").Int(); got != 3 {
		t.Errorf("gjson nested: got %d, want 3", got)
	}
	if got, want := gjson.Get(text, "text").String(), "tab\there é 😀"; got != want {
		t.Errorf("gjson text: got %q, want %q", got, want)
	}

	// Parsing the output reproduces the same value.
	d2, err := doc.ParseString(text)
	if err != nil {
		t.Fatalf("Parse output: %v", err)
	}
	if diff := cmp.Diff(d.Value(), d2.Value(), equalValues); diff != "" {
		t.Errorf("Round trip (-want, +got):\n%s", diff)
	}

	// Subtypes survive.
	for path, want := range map[string]doc.Kind{
		"count": doc.KindInt64,
		"big":   doc.KindUint64,
		"neg":   doc.KindInt64,
		"ratio": doc.KindDouble,
		"ok":    doc.KindBool,
		"text":  doc.KindString,
	} {
		if got := mustAt(t, *d2, path).Kind(); got != want {
			t.Errorf("Kind of %q: got %v, want %v", path, got, want)
		}
	}
}

func TestEditAgreesWithSJSON(t *testing.T) {
	const input = `{"a":1,"nested":{"x":[1,2]},"z":"last"}`

	edits := []struct {
		path  string
		value any
		apply func(*doc.Document) error
	}{
		{"a", "one", func(d *doc.Document) error { return d.Set("a", doc.String("one")) }},
		{"added", true, func(d *doc.Document) error { return d.Set("added", doc.Bool(true)) }},
		{"nested.x.1", 25, func(d *doc.Document) error {
			v, err := d.At("nested", "x", 1)
			if err != nil {
				return err
			}
			return v.Assign(doc.Int(25))
		}},
		{"nested.y", 1.5, func(d *doc.Document) error {
			v, err := d.At("nested")
			if err != nil {
				return err
			}
			return v.Set("y", doc.Float64(1.5))
		}},
	}

	for _, e := range edits {
		want, err := sjson.Set(input, e.path, e.value)
		if err != nil {
			t.Fatalf("sjson.Set %q: %v", e.path, err)
		}
		d := mustParse(t, input)
		if err := e.apply(d); err != nil {
			t.Fatalf("Edit %q: %v", e.path, err)
		}
		wd := mustParse(t, want)
		if diff := cmp.Diff(wd.Value(), d.Value(), equalValues); diff != "" {
			t.Errorf("Edit %q (-sjson, +doc):\n%s", e.path, diff)
		}
	}
}

func TestParseReader(t *testing.T) {
	d, err := doc.ParseReader(strings.NewReader(`{"a": [1, 2]}`))
	if err != nil {
		t.Fatalf("ParseReader: %v", err)
	}
	checkJSON(t, *d, `{"a":[1,2]}`)

	if _, err := doc.ParseReader(iotest.ErrReader(io.ErrClosedPipe)); !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("ParseReader: got %v, want %v", err, io.ErrClosedPipe)
	}
}

func TestStandardJSON(t *testing.T) {
	t.Run("Unmarshal", func(t *testing.T) {
		var v struct {
			Name  string    `json:"name"`
			Extra doc.Value `json:"extra"`
		}
		if err := json.Unmarshal([]byte(`{"name":"x","extra":{"k":[1,2.5]}}`), &v); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		want := doc.Object(doc.Field("k", doc.List(doc.Int(1), doc.Float64(2.5))))
		if diff := cmp.Diff(want, v.Extra, equalValues); diff != "" {
			t.Errorf("Unmarshal (-want, +got):\n%s", diff)
		}

		// The decoded value is not attached and may be stored.
		d := doc.NewDocument(doc.List())
		if err := d.Append(v.Extra); err != nil {
			t.Errorf("Append decoded value: %v", err)
		}
	})

	t.Run("Marshal", func(t *testing.T) {
		d := mustParse(t, `{"b":[1,2],"a":null}`)
		x := struct {
			Doc   *doc.Document `json:"doc"`
			Value doc.Value     `json:"value"`
		}{Doc: d, Value: doc.Float32(0.1)}
		got, err := json.Marshal(x)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		const want = `{"doc":{"b":[1,2],"a":null},"value":0.1}`
		if string(got) != want {
			t.Errorf("Marshal: got %s, want %s", got, want)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		var v doc.Value
		if err := v.UnmarshalJSON([]byte(`{"a":`)); !errors.Is(err, doc.ErrStructural) {
			t.Errorf("UnmarshalJSON: got %v, want %v", err, doc.ErrStructural)
		}
	})
}
