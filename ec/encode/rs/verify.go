package rs

import (
	"bytes"
	"encoding/binary"

	sha256simd "github.com/minio/sha256-simd"
)

// ChunkVerifier provides verification functionality for Reed-Solomon chunks
type ChunkVerifier interface {
	// Verify checks if the chunk is valid
	Verify(chunk *Chunk) bool

	// GenerateExtra generates verification data for a chunk. The result is
	// stored in the chunk's Extra field.
	GenerateExtra(chunk *Chunk) ([]byte, error)
}

// DigestVerifier binds every chunk to its message ID, position and payload
// with a SHA-256 digest carried in Extra.
type DigestVerifier struct{}

// GenerateExtra returns the digest of the chunk
func (DigestVerifier) GenerateExtra(chunk *Chunk) ([]byte, error) {
	return chunkDigest(chunk), nil
}

// Verify recomputes the digest and compares it with the chunk's Extra
func (DigestVerifier) Verify(chunk *Chunk) bool {
	return bytes.Equal(chunk.Extra, chunkDigest(chunk))
}

func chunkDigest(chunk *Chunk) []byte {
	h := sha256simd.New()
	var buf [8]byte

	binary.BigEndian.PutUint64(buf[:], uint64(len(chunk.MessageID)))
	h.Write(buf[:])
	h.Write([]byte(chunk.MessageID))

	binary.BigEndian.PutUint64(buf[:], uint64(chunk.Index))
	h.Write(buf[:])
	binary.BigEndian.PutUint64(buf[:], uint64(chunk.ChunkCount))
	h.Write(buf[:])

	for _, e := range chunk.ChunkData {
		binary.BigEndian.PutUint64(buf[:], uint64(e.Num()))
		h.Write(buf[:])
	}

	return h.Sum(nil)
}
