package gf

import "math/bits"

// Conversion between byte strings and fixed-width element values

// BitsPerElement returns the number of bits needed to hold any element.
func (f *Field) BitsPerElement() int {
	return bits.Len(f.base - 1)
}

// BitsPerDataElement returns the number of bits that can be stored in one
// element without reduction, i.e. the largest k with 2^k <= p.
func (f *Field) BitsPerDataElement() int {
	return bits.Len(f.base) - 1
}

// FromBits builds an element from the first bitLen bits of data, most
// significant bit first, reducing the result into the field.
func (f *Field) FromBits(data []byte, bitLen int) Element {
	var v uint
	for i := 0; i < bitLen; i++ {
		byteIdx := i / 8
		bitIdx := i % 8
		v <<= 1
		if byteIdx < len(data) && data[byteIdx]&(1<<(7-bitIdx)) != 0 {
			v |= 1
		}
	}
	return f.Elem(v)
}

// Bits returns the low bitLen bits of e, most significant bit first.
func (e Element) Bits(bitLen int) []byte {
	result := make([]byte, (bitLen+7)/8)
	for i := 0; i < bitLen; i++ {
		if (e.num>>(bitLen-1-i))&1 == 1 {
			result[i/8] |= 1 << (7 - i%8)
		}
	}
	return result
}

// SplitBitsToElements splits data into elements of exactly k bits each. If
// the total number of bits is not divisible by k, the trailing bits are
// discarded.
func SplitBitsToElements(data []byte, k int, field *Field) []Element {
	numElements := len(data) * 8 / k

	result := make([]Element, numElements)
	for i := 0; i < numElements; i++ {
		startBit := i * k
		elementBytes := make([]byte, (k+7)/8)

		for bit := 0; bit < k; bit++ {
			srcBit := startBit + bit
			if data[srcBit/8]&(1<<(7-srcBit%8)) != 0 {
				elementBytes[bit/8] |= 1 << (7 - bit%8)
			}
		}

		result[i] = field.FromBits(elementBytes, k)
	}

	return result
}

// ElementsToBytes packs the low k bits of each element back into bytes. The
// output is rounded up to a whole number of bytes.
func ElementsToBytes(elements []Element, k int) []byte {
	totalBits := len(elements) * k
	result := make([]byte, (totalBits+7)/8)

	for i, element := range elements {
		elementBytes := element.Bits(k)
		startBit := i * k

		for bit := 0; bit < k; bit++ {
			if elementBytes[bit/8]&(1<<(7-bit%8)) != 0 {
				dstBit := startBit + bit
				result[dstBit/8] |= 1 << (7 - dstBit%8)
			}
		}
	}

	return result
}
