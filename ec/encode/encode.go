package encode

import "github.com/ppopth/galois/gf"

// Chunk represents a generic encoding chunk
type Chunk interface {
	// Data returns the chunk payload as field elements
	Data() []gf.Element
	// Position returns the index of the chunk within its message
	Position() int
}

// Encoder defines the interface for erasure coding algorithms over a prime field
type Encoder interface {
	// VerifyThenAddChunk verifies and stores a chunk if valid
	VerifyThenAddChunk(chunk Chunk) bool
	// GenerateThenAddChunks splits a message into chunks and stores them
	GenerateThenAddChunks(messageID string, message []byte) (int, error)
	// ReconstructMessage recovers the original message
	ReconstructMessage(messageID string) ([]byte, error)

	// GetMessageIDs returns all message IDs that have chunks stored
	GetMessageIDs() []string
	// GetChunks returns the stored chunks of a message ordered by index
	GetChunks(messageID string) []Chunk
	// GetChunkCount returns the number of chunks for a message ID
	GetChunkCount(messageID string) int
	// GetMinChunksForReconstruction returns the minimum number of chunks needed to reconstruct a message
	GetMinChunksForReconstruction(messageID string) int
}
