package rs

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/ppopth/galois/ec/encode"
	"github.com/ppopth/galois/gf"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("rs")

// Chunk represents a Reed-Solomon encoded chunk
type Chunk struct {
	MessageID  string       // The ID of the message this chunk belongs to
	Index      int          // The index of this chunk (0 to k+n-1)
	ChunkData  []gf.Element // The chunk payload as field elements
	ChunkCount int          // Number of data chunks for this message
	Extra      []byte       // Optional verification data
}

// Data returns the chunk's field elements (implements encode.Chunk interface)
func (c Chunk) Data() []gf.Element {
	return c.ChunkData
}

// Position returns the chunk index (implements encode.Chunk interface)
func (c Chunk) Position() int {
	return c.Index
}

// RsEncoderConfig contains configuration for Reed-Solomon encoder
type RsEncoderConfig struct {
	// Parity ratio (e.g., 0.5 means 50% redundancy, 2.0 means 200% redundancy)
	ParityRatio float64
	// Message chunk size in bytes
	MessageChunkSize int
	// Prime field for operations. Its base must exceed the total number of
	// chunks of any message.
	Field *gf.Field
	// Optional chunk verifier for validating chunks
	ChunkVerifier ChunkVerifier
}

// RsEncoder implements systematic Reed-Solomon erasure coding over GF(p)
type RsEncoder struct {
	config *RsEncoderConfig

	bitsPerElement   int // Message bits carried by each field element
	elementsPerChunk int // Field elements per chunk

	mutex       sync.Mutex               // Protects chunks and chunkCounts
	chunks      map[string]map[int]Chunk // Storage for chunks by message ID and index
	chunkCounts map[string]int           // Number of data chunks per message
}

var _ encode.Encoder = (*RsEncoder)(nil)

// NewRsEncoder creates a new Reed-Solomon encoder
func NewRsEncoder(config *RsEncoderConfig) (*RsEncoder, error) {
	if config == nil {
		config = DefaultRsEncoderConfig()
	}

	if config.ParityRatio <= 0 {
		return nil, fmt.Errorf("parity ratio must be positive")
	}
	if config.MessageChunkSize <= 0 {
		return nil, fmt.Errorf("message chunk size must be positive")
	}
	if config.Field == nil {
		return nil, fmt.Errorf("field must be set")
	}
	// One data chunk plus one parity chunk need two distinct nonzero points
	if config.Field.Base() < 3 {
		return nil, fmt.Errorf("field %s is too small for Reed-Solomon coding", config.Field)
	}

	r := &RsEncoder{
		config:      config,
		chunks:      make(map[string]map[int]Chunk),
		chunkCounts: make(map[string]int),
	}

	r.bitsPerElement = config.Field.BitsPerDataElement()
	r.elementsPerChunk = (8*config.MessageChunkSize + r.bitsPerElement - 1) / r.bitsPerElement

	log.Debugf("rs encoder over %s: %d bits per element, %d elements per chunk",
		config.Field, r.bitsPerElement, r.elementsPerChunk)
	return r, nil
}

// DefaultRsEncoderConfig returns default configuration
func DefaultRsEncoderConfig() *RsEncoderConfig {
	return &RsEncoderConfig{
		ParityRatio:      0.5,               // 50% redundancy
		MessageChunkSize: 1024,              // Message chunk size in bytes
		Field:            gf.MustField(257), // GF(257) carries one byte per element
	}
}

// ElementsPerChunk returns the number of field elements in every chunk
func (r *RsEncoder) ElementsPerChunk() int {
	return r.elementsPerChunk
}

// VerifyThenAddChunk verifies and stores a chunk if valid
func (r *RsEncoder) VerifyThenAddChunk(chunk encode.Chunk) bool {
	rsChunk, ok := chunk.(Chunk)
	if !ok {
		return false
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	chunkCount := rsChunk.ChunkCount
	if chunkCount <= 0 {
		log.Debugf("rejecting chunk %d of %s: invalid chunk count %d", rsChunk.Index, rsChunk.MessageID, chunkCount)
		return false
	}

	// The chunk count must agree with what we already know about the message
	if existingCount, exists := r.chunkCounts[rsChunk.MessageID]; exists && existingCount != chunkCount {
		log.Debugf("rejecting chunk %d of %s: chunk count %d, expected %d",
			rsChunk.Index, rsChunk.MessageID, chunkCount, existingCount)
		return false
	}

	totalChunks := chunkCount + r.getParityCount(chunkCount)
	if rsChunk.Index < 0 || rsChunk.Index >= totalChunks {
		log.Debugf("rejecting chunk of %s: index %d out of range", rsChunk.MessageID, rsChunk.Index)
		return false
	}
	if uint(totalChunks) >= r.config.Field.Base() {
		return false
	}

	if len(rsChunk.ChunkData) != r.elementsPerChunk {
		log.Debugf("rejecting chunk %d of %s: %d elements, expected %d",
			rsChunk.Index, rsChunk.MessageID, len(rsChunk.ChunkData), r.elementsPerChunk)
		return false
	}
	for _, e := range rsChunk.ChunkData {
		if !e.Field().Equal(r.config.Field) {
			log.Debugf("rejecting chunk %d of %s: element from %s", rsChunk.Index, rsChunk.MessageID, e.Field())
			return false
		}
	}

	if _, exists := r.chunks[rsChunk.MessageID][rsChunk.Index]; exists {
		return false
	}

	if r.config.ChunkVerifier != nil && !r.config.ChunkVerifier.Verify(&rsChunk) {
		log.Warnf("chunk %d of %s failed verification", rsChunk.Index, rsChunk.MessageID)
		return false
	}

	if _, exists := r.chunks[rsChunk.MessageID]; !exists {
		r.chunks[rsChunk.MessageID] = make(map[int]Chunk)
	}
	r.chunkCounts[rsChunk.MessageID] = chunkCount
	r.chunks[rsChunk.MessageID][rsChunk.Index] = rsChunk
	return true
}

// getParityCount returns the number of parity chunks for a given data chunk count
func (r *RsEncoder) getParityCount(chunkCount int) int {
	parityCount := int(float64(chunkCount) * r.config.ParityRatio)
	if parityCount == 0 {
		parityCount = 1 // At least 1 parity chunk
	}
	return parityCount
}

// GenerateThenAddChunks splits a message into chunks and generates parity chunks
func (r *RsEncoder) GenerateThenAddChunks(messageID string, message []byte) (int, error) {
	if len(message)%r.config.MessageChunkSize != 0 {
		return 0, fmt.Errorf("message size (%d) must be a multiple of message chunk size (%d)",
			len(message), r.config.MessageChunkSize)
	}

	chunkCount := len(message) / r.config.MessageChunkSize
	if chunkCount == 0 {
		return 0, fmt.Errorf("message is empty")
	}

	parityCount := r.getParityCount(chunkCount)
	totalChunks := chunkCount + parityCount
	if uint(totalChunks) >= r.config.Field.Base() {
		return 0, fmt.Errorf("message needs %d chunks but %s supports at most %d",
			totalChunks, r.config.Field, r.config.Field.Base()-1)
	}

	f := r.config.Field
	chunks := make(map[int]Chunk, totalChunks)

	// Data chunks: each chunk's bytes are packed into field elements
	paddedSize := (r.elementsPerChunk*r.bitsPerElement + 7) / 8
	for i := 0; i < chunkCount; i++ {
		padded := make([]byte, paddedSize)
		copy(padded, message[i*r.config.MessageChunkSize:(i+1)*r.config.MessageChunkSize])
		elements := gf.SplitBitsToElements(padded, r.bitsPerElement, f)[:r.elementsPerChunk]

		chunks[i] = Chunk{
			MessageID:  messageID,
			Index:      i,
			ChunkData:  elements,
			ChunkCount: chunkCount,
		}
	}

	encodingMatrix, err := r.generateEncodingMatrix(chunkCount, parityCount)
	if err != nil {
		return 0, err
	}

	// Parity chunk i is row chunkCount+i of the systematic generator matrix
	// applied to the data chunks element-wise:
	//   P[i][e] = Σ(j=0 to chunkCount-1) G[chunkCount+i][j] * D[j][e]
	for i := 0; i < parityCount; i++ {
		accumulator := make([]gf.Element, r.elementsPerChunk)
		for k := range accumulator {
			accumulator[k] = f.Zero()
		}

		for j := 0; j < chunkCount; j++ {
			coeff := encodingMatrix[chunkCount+i][j]
			for k, e := range chunks[j].ChunkData {
				accumulator[k].AddAssign(coeff.Mul(e))
			}
		}

		chunks[chunkCount+i] = Chunk{
			MessageID:  messageID,
			Index:      chunkCount + i,
			ChunkData:  accumulator,
			ChunkCount: chunkCount,
		}
	}

	if r.config.ChunkVerifier != nil {
		for i := 0; i < totalChunks; i++ {
			chunk := chunks[i]
			extra, err := r.config.ChunkVerifier.GenerateExtra(&chunk)
			if err != nil {
				return 0, fmt.Errorf("failed to generate verification data for chunk %d: %w", i, err)
			}
			chunk.Extra = extra
			chunks[i] = chunk
		}
	}

	r.mutex.Lock()
	r.chunks[messageID] = chunks
	r.chunkCounts[messageID] = chunkCount
	r.mutex.Unlock()

	log.Debugf("generated %d data and %d parity chunks for %s", chunkCount, parityCount, messageID)
	return totalChunks, nil
}

// ReconstructMessage recovers the original message from available chunks
func (r *RsEncoder) ReconstructMessage(messageID string) ([]byte, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	chunks, exists := r.chunks[messageID]
	if !exists {
		return nil, fmt.Errorf("no chunks found for message %s", messageID)
	}

	chunkCount, exists := r.chunkCounts[messageID]
	if !exists {
		return nil, fmt.Errorf("no data chunk count found for message %s", messageID)
	}

	if len(chunks) < chunkCount {
		return nil, fmt.Errorf("insufficient chunks: have %d, need %d", len(chunks), chunkCount)
	}

	f := r.config.Field
	size := r.config.MessageChunkSize
	reconstructed := make([]byte, chunkCount*size)

	hasAllDataChunks := true
	for i := 0; i < chunkCount; i++ {
		if _, exists := chunks[i]; !exists {
			hasAllDataChunks = false
			break
		}
	}

	if hasAllDataChunks {
		log.Debugf("reconstructing %s from data chunks", messageID)
		for i := 0; i < chunkCount; i++ {
			data := gf.ElementsToBytes(chunks[i].ChunkData, r.bitsPerElement)
			copy(reconstructed[i*size:], data[:size])
		}
		return reconstructed, nil
	}

	// Erasure decoding: any chunkCount chunks give a system A * D = R where
	// row j of A is the generator matrix row of the j-th available chunk.
	// The MDS property of Reed-Solomon codes makes every such A invertible.
	availableIndices := slices.Sorted(maps.Keys(chunks))[:chunkCount]
	log.Debugf("reconstructing %s from chunks %v", messageID, availableIndices)

	encodingMatrix, err := r.generateEncodingMatrix(chunkCount, r.getParityCount(chunkCount))
	if err != nil {
		return nil, err
	}

	decodingMatrix := make([][]gf.Element, chunkCount)
	R := make([][]gf.Element, chunkCount)
	for i, idx := range availableIndices {
		decodingMatrix[i] = encodingMatrix[idx]
		R[i] = chunks[idx].ChunkData
	}

	V, err := gf.RecoverVectors(decodingMatrix, R, f)
	if err != nil {
		return nil, fmt.Errorf("failed to invert decoding matrix: %w", err)
	}

	for i := 0; i < chunkCount; i++ {
		data := gf.ElementsToBytes(V[i], r.bitsPerElement)
		copy(reconstructed[i*size:], data[:size])
	}
	return reconstructed, nil
}

// GetMessageIDs returns all message IDs that have chunks stored
func (r *RsEncoder) GetMessageIDs() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return slices.Sorted(maps.Keys(r.chunks))
}

// GetChunks returns the stored chunks of a message ordered by index
func (r *RsEncoder) GetChunks(messageID string) []encode.Chunk {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	chunks := r.chunks[messageID]
	out := make([]encode.Chunk, 0, len(chunks))
	for _, idx := range slices.Sorted(maps.Keys(chunks)) {
		out = append(out, chunks[idx])
	}
	return out
}

// GetChunkCount returns the number of chunks for a message ID
func (r *RsEncoder) GetChunkCount(messageID string) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return len(r.chunks[messageID])
}

// GetMinChunksForReconstruction returns the minimum number of chunks needed
func (r *RsEncoder) GetMinChunksForReconstruction(messageID string) int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.chunkCounts[messageID]
}

// generateEncodingMatrix creates the full systematic generator matrix
//
//  1. Build the n×k Vandermonde matrix A over evaluation points 1..n
//  2. Invert its top k×k block A_top
//  3. G = A × A_top⁻¹, whose first k rows are the identity and whose last
//     n-k rows hold the parity coefficients
func (r *RsEncoder) generateEncodingMatrix(chunkCount int, parityCount int) ([][]gf.Element, error) {
	f := r.config.Field
	vandermonde := gf.Vandermonde(r.generateEvaluationPoints(chunkCount+parityCount), chunkCount, f)

	invDataMatrix, err := gf.InvertMatrix(vandermonde[:chunkCount], f)
	if err != nil {
		// Distinct evaluation points always give an invertible block
		return nil, fmt.Errorf("failed to invert data matrix: %w", err)
	}

	return gf.MatrixMultiply(vandermonde, invDataMatrix, f), nil
}

// generateEvaluationPoints returns the distinct nonzero points 1, 2, ..., n
func (r *RsEncoder) generateEvaluationPoints(totalChunks int) []gf.Element {
	evalPoints := make([]gf.Element, totalChunks)
	for i := range evalPoints {
		evalPoints[i] = r.config.Field.Elem(uint(i + 1))
	}
	return evalPoints
}
