package rlnc

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"

	"github.com/ppopth/galois/ec/encode"
	"github.com/ppopth/galois/gf"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("rlnc")

// Chunk represents a network coding chunk with its linear combination coefficients
type Chunk struct {
	MessageID string       // The ID of the message this chunk belongs to
	ChunkData []gf.Element // The combined chunk payload
	Coeffs    []gf.Element // Coefficients for the linear combination this chunk represents
}

// Data returns the chunk's field elements (implements encode.Chunk interface)
func (c Chunk) Data() []gf.Element {
	return c.ChunkData
}

// Position returns the index of the source chunk when the coefficients form
// a unit vector, or -1 for a coded combination.
func (c Chunk) Position() int {
	pos := -1
	for i, coeff := range c.Coeffs {
		if coeff.IsZero() {
			continue
		}
		if pos != -1 || !coeff.EqualRaw(1) {
			return -1
		}
		pos = i
	}
	return pos
}

type RlncEncoderConfig struct {
	// Message chunk size in bytes. Messages must be a multiple of this size.
	MessageChunkSize int
	// Prime field for linear algebra operations
	Field *gf.Field
	// Source of random combination coefficients. Nil means crypto/rand.
	Rand io.Reader
}

type RlncEncoder struct {
	config *RlncEncoderConfig

	bitsPerElement   int // Message bits carried by each field element
	elementsPerChunk int // Field elements per chunk

	mutex     sync.Mutex                // Protects chunks map and REF data
	chunks    map[string][]Chunk        // Storage for chunks by message ID
	coeffsREF map[string][][]gf.Element // REF form of coefficient vectors by message ID
}

var _ encode.Encoder = (*RlncEncoder)(nil)

func NewRlncEncoder(config *RlncEncoderConfig) (*RlncEncoder, error) {
	if config == nil {
		config = DefaultRlncEncoderConfig()
	}
	if config.MessageChunkSize <= 0 {
		return nil, fmt.Errorf("message chunk size must be positive")
	}
	if config.Field == nil {
		return nil, fmt.Errorf("field must be set")
	}

	r := &RlncEncoder{
		config:    config,
		chunks:    make(map[string][]Chunk),
		coeffsREF: make(map[string][][]gf.Element),
	}
	r.bitsPerElement = config.Field.BitsPerDataElement()
	r.elementsPerChunk = (8*config.MessageChunkSize + r.bitsPerElement - 1) / r.bitsPerElement

	log.Debugf("rlnc encoder over %s: %d elements per chunk", config.Field, r.elementsPerChunk)
	return r, nil
}

func DefaultRlncEncoderConfig() *RlncEncoderConfig {
	// 2^16 + 1 is prime, so every element carries two bytes
	return &RlncEncoderConfig{
		MessageChunkSize: 1024,
		Field:            gf.MustField(65537),
	}
}

// ElementsPerChunk returns the number of field elements in every chunk
func (r *RlncEncoder) ElementsPerChunk() int {
	return r.elementsPerChunk
}

// VerifyThenAddChunk verifies a chunk and stores it if valid and linearly independent
func (r *RlncEncoder) VerifyThenAddChunk(chunk encode.Chunk) bool {
	rlncChunk, ok := chunk.(Chunk)
	if !ok {
		return false
	}
	if len(rlncChunk.ChunkData) != r.elementsPerChunk || len(rlncChunk.Coeffs) == 0 {
		return false
	}
	for _, e := range rlncChunk.ChunkData {
		if !e.Field().Equal(r.config.Field) {
			return false
		}
	}
	for _, e := range rlncChunk.Coeffs {
		if !e.Field().Equal(r.config.Field) {
			return false
		}
	}

	messageID := rlncChunk.MessageID

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if existing := r.chunks[messageID]; len(existing) > 0 && len(existing[0].Coeffs) != len(rlncChunk.Coeffs) {
		log.Debugf("rejecting chunk of %s: %d coefficients, expected %d",
			messageID, len(rlncChunk.Coeffs), len(existing[0].Coeffs))
		return false
	}

	// Use REF-optimized incremental independence check
	newREF, isIndependent := gf.IsLinearlyIndependentIncremental(r.coeffsREF[messageID], rlncChunk.Coeffs, r.config.Field)
	if !isIndependent {
		return false
	}

	r.chunks[messageID] = append(r.chunks[messageID], rlncChunk)
	r.coeffsREF[messageID] = newREF
	return true
}

// EmitChunk emits a random linear combination of the stored chunks of a given message ID
func (r *RlncEncoder) EmitChunk(messageID string) (encode.Chunk, error) {
	r.mutex.Lock()
	if len(r.chunks[messageID]) == 0 {
		r.mutex.Unlock()
		return nil, fmt.Errorf("no chunks found for message ID: %s", messageID)
	}
	// Make a copy to avoid holding the lock during computation
	rlncChunks := slices.Clone(r.chunks[messageID])
	r.mutex.Unlock()

	f := r.config.Field
	accumulator := zeros(f, r.elementsPerChunk)
	combinedCoefficients := zeros(f, len(rlncChunks[0].Coeffs))

	for _, chunk := range rlncChunks {
		randomFactor, err := f.Random(r.config.Rand)
		if err != nil {
			return nil, fmt.Errorf("failed to sample coefficient: %w", err)
		}
		for i, element := range chunk.ChunkData {
			accumulator[i].AddAssign(randomFactor.Mul(element))
		}
		// new_coeffs[i] = sum(factor[j] * old_coeffs[j][i])
		for i, coeff := range chunk.Coeffs {
			combinedCoefficients[i].AddAssign(randomFactor.Mul(coeff))
		}
	}

	return Chunk{
		MessageID: messageID,
		ChunkData: accumulator,
		Coeffs:    combinedCoefficients,
	}, nil
}

// GenerateThenAddChunks splits a message into chunks and stores them with identity coefficients
func (r *RlncEncoder) GenerateThenAddChunks(messageID string, message []byte) (int, error) {
	if len(message)%r.config.MessageChunkSize != 0 {
		return 0, fmt.Errorf("the size of the message (%d) must be a multiple of the chunk size (%d)",
			len(message), r.config.MessageChunkSize)
	}
	chunkCount := len(message) / r.config.MessageChunkSize
	if chunkCount == 0 {
		return 0, fmt.Errorf("message is empty")
	}

	f := r.config.Field
	paddedSize := (r.elementsPerChunk*r.bitsPerElement + 7) / 8
	identity := gf.Identity(chunkCount, f)

	chunks := make([]Chunk, chunkCount)
	for i := range chunks {
		padded := make([]byte, paddedSize)
		copy(padded, message[i*r.config.MessageChunkSize:(i+1)*r.config.MessageChunkSize])

		// Chunk i has coefficient 1 for itself
		chunks[i] = Chunk{
			MessageID: messageID,
			ChunkData: gf.SplitBitsToElements(padded, r.bitsPerElement, f)[:r.elementsPerChunk],
			Coeffs:    identity[i],
		}
	}

	r.mutex.Lock()
	r.chunks[messageID] = chunks
	// Identity matrix is already in REF
	r.coeffsREF[messageID] = gf.Identity(chunkCount, f)
	r.mutex.Unlock()

	return chunkCount, nil
}

// GetChunks returns all chunks for a given message ID in arrival order
func (r *RlncEncoder) GetChunks(messageID string) []encode.Chunk {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	result := make([]encode.Chunk, len(r.chunks[messageID]))
	for i, chunk := range r.chunks[messageID] {
		result[i] = chunk
	}
	return result
}

// GetMessageIDs returns all message IDs that have chunks stored
func (r *RlncEncoder) GetMessageIDs() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return slices.Sorted(maps.Keys(r.chunks))
}

// GetChunkCount returns the number of chunks for a message ID
func (r *RlncEncoder) GetChunkCount(messageID string) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return len(r.chunks[messageID])
}

// GetMinChunksForReconstruction returns the minimum number of chunks needed to reconstruct a message
func (r *RlncEncoder) GetMinChunksForReconstruction(messageID string) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	chunks := r.chunks[messageID]
	if len(chunks) == 0 {
		return 0
	}
	// One independent combination per original chunk
	return len(chunks[0].Coeffs)
}

// ReconstructMessage recovers the original message by solving the linear system
//
// The stored chunks R are combinations A · V of the original chunks V. Every
// stored coefficient vector is independent of the others, so once there are
// as many chunks as original chunks, A is invertible and V = A⁻¹ · R.
func (r *RlncEncoder) ReconstructMessage(messageID string) ([]byte, error) {
	r.mutex.Lock()
	if len(r.chunks[messageID]) == 0 {
		r.mutex.Unlock()
		return nil, fmt.Errorf("no chunks found for message ID: %s", messageID)
	}
	rlncChunks := slices.Clone(r.chunks[messageID])
	r.mutex.Unlock()

	needed := len(rlncChunks[0].Coeffs)
	if len(rlncChunks) < needed {
		return nil, fmt.Errorf("insufficient chunks: have %d, need %d", len(rlncChunks), needed)
	}

	A := make([][]gf.Element, needed)
	R := make([][]gf.Element, needed)
	for i, chunk := range rlncChunks[:needed] {
		A[i] = chunk.Coeffs
		R[i] = chunk.ChunkData
	}

	V, err := gf.RecoverVectors(A, R, r.config.Field)
	if err != nil {
		return nil, err
	}

	size := r.config.MessageChunkSize
	messageBuffer := make([]byte, 0, needed*size)
	for _, v := range V {
		messageBuffer = append(messageBuffer, gf.ElementsToBytes(v, r.bitsPerElement)[:size]...)
	}
	return messageBuffer, nil
}

func zeros(f *gf.Field, n int) []gf.Element {
	out := make([]gf.Element, n)
	for i := range out {
		out[i] = f.Zero()
	}
	return out
}
