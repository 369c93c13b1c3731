package utils

import (
	"hash/fnv"
	"math"
	"strings"

	"github.com/pgvector/pgvector-go"
)

// EmbeddingDim is the width of the vector column on plans and diagnoses.
const EmbeddingDim = 256

// EmbedText produces a deterministic local embedding of text for the
// "similar records" search. Each word's hash spreads a small sinusoidal
// influence across the dimensions and the result is L2-normalized, so
// cosine distance over the column behaves sensibly without calling any
// external embedding API.
func EmbedText(text string) pgvector.Vector {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	vector := make([]float32, EmbeddingDim)

	for _, word := range words {
		seed := hashWord(word)
		for i := 0; i < EmbeddingDim; i++ {
			vector[i] += float32(math.Sin(float64(seed+uint32(i))) * 0.1)
		}
	}

	var magnitude float64
	for _, v := range vector {
		magnitude += float64(v) * float64(v)
	}
	if magnitude > 0 {
		norm := float32(math.Sqrt(magnitude))
		for i := range vector {
			vector[i] /= norm
		}
	}
	return pgvector.NewVector(vector)
}

func hashWord(word string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(word))
	return h.Sum32()
}
