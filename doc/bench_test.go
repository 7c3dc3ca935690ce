// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package doc_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/creachadair/jvalue/doc"
	"github.com/creachadair/jvalue/internal/testutil"
)

func benchInput(n int) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := range n {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(testutil.Sample)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

func BenchmarkParse(b *testing.B) {
	input := benchInput(500)
	b.SetBytes(int64(len(input)))

	b.Run("Unmarshal", func(b *testing.B) {
		for b.Loop() {
			var v any
			if err := json.Unmarshal(input, &v); err != nil {
				b.Fatalf("Unmarshal: %v", err)
			}
		}
	})
	b.Run("Document", func(b *testing.B) {
		for b.Loop() {
			if _, err := doc.Parse(input); err != nil {
				b.Fatalf("Parse: %v", err)
			}
		}
	})
}

func BenchmarkEncode(b *testing.B) {
	d, err := doc.Parse(benchInput(500))
	if err != nil {
		b.Fatalf("Parse: %v", err)
	}
	buf, err := d.AppendJSON(nil)
	if err != nil {
		b.Fatalf("AppendJSON: %v", err)
	}
	b.SetBytes(int64(len(buf)))
	for b.Loop() {
		buf, _ = d.AppendJSON(buf[:0])
	}
}

func BenchmarkKey(b *testing.B) {
	for _, n := range []int{4, 64, 1024} {
		d := doc.NewDocument(doc.Object())
		for i := range n {
			d.Set(fmt.Sprintf("key%d", i), doc.Int(int64(i)))
		}
		key := fmt.Sprintf("key%d", n/2)
		b.Run(fmt.Sprint(n), func(b *testing.B) {
			for b.Loop() {
				if _, err := d.Key(key); err != nil {
					b.Fatalf("Key: %v", err)
				}
			}
		})
	}
}

func BenchmarkMsgpack(b *testing.B) {
	d, err := doc.Parse(benchInput(100))
	if err != nil {
		b.Fatalf("Parse: %v", err)
	}
	data, err := doc.MarshalMsgpack(*d)
	if err != nil {
		b.Fatalf("MarshalMsgpack: %v", err)
	}
	b.Logf("Encoded %d bytes", len(data))

	b.Run("Marshal", func(b *testing.B) {
		for b.Loop() {
			doc.MarshalMsgpack(*d)
		}
	})
	b.Run("Unmarshal", func(b *testing.B) {
		for b.Loop() {
			if _, err := doc.UnmarshalMsgpack(data); err != nil {
				b.Fatalf("UnmarshalMsgpack: %v", err)
			}
		}
	})
}
