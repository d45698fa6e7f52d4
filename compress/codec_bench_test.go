package compress

import (
	"testing"
)

func BenchmarkAllCodecs_Compress(b *testing.B) {
	data := streamLike(1 << 14)
	for typ, c := range allCodecs() {
		b.Run(typ.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				_, _ = c.Compress(data)
			}
		})
	}
}

func BenchmarkAllCodecs_Decompress(b *testing.B) {
	data := streamLike(1 << 14)
	for typ, c := range allCodecs() {
		packed, err := c.Compress(data)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(typ.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for b.Loop() {
				_, _ = c.Decompress(packed)
			}
		})
	}
}
