package internal

import (
	"iter"
)

// IterSeqConcat concatenates multiple iterators into a single iterator sequence.
func IterSeqConcat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for val := range seq {
				if !yield(val) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// IterSeqMap converts every value of a dual-return sequence into a single value.
func IterSeqMap[K any, V any, T any](seq iter.Seq2[K, V], convert func(K, V) T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for key, val := range seq {
			if !yield(convert(key, val)) {
				return
			}
		}
	}
}
