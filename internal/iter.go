// Package internal holds helpers shared by the lvm packages.
package internal

import (
	"iter"
)

// IterSeq2Concat yields every pair of each sequence in turn. A key repeated
// by a later sequence is yielded again, so collecting into a map lets the
// later sequences override the earlier ones.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}
