package scppm

// CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF), used by the turbo driver
// (C9) as the early-stop / convergence test: the CCSDS information block
// carries this CRC at its head, and the decoder stops iterating once it
// verifies (spec.md §4.9 step 2e). Bit-serial, in the style of the
// teacher's il2p_crc.go Hamming/CRC table declarations, but processed one
// bit at a time since a payload's bit length is not generally a multiple
// of 8 (byte-grouping it would silently drop a trailing fragment).
const crc16Poly = 0x1021

// crc16 computes CRC-16/CCITT-FALSE over a one-bit-per-byte bit sequence of
// any length, MSB-first.
func crc16(bitSeq []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, bit := range bitSeq {
		msb := (crc >> 15) & 1
		crc <<= 1
		if msb^uint16(bit) != 0 {
			crc ^= crc16Poly
		}
	}
	return crc
}

// crc16Bits returns the 16-bit CRC as 16 individual MSB-first bits, ready
// to prepend to an information block.
func crc16Bits(crc uint16) []byte {
	out := make([]byte, 16)
	for i := 0; i < 16; i++ {
		out[i] = byte((crc >> uint(15-i)) & 1)
	}
	return out
}

// verifyCRC checks that the CRC-16 computed over infoBlock[16:len-tailBits]
// (the payload bits only, excluding the 16-bit CRC header and the
// all-zero termination tail) matches the header. tailBits must be the same
// value EncodeInfoBlock used to pad the information block, so both sides
// hash the identical bit range.
func verifyCRC(infoBlockWithCRC []byte, tailBits int) bool {
	if len(infoBlockWithCRC) < 16+tailBits {
		return false
	}

	want := uint16(0)
	for i := 0; i < 16; i++ {
		want = (want << 1) | uint16(infoBlockWithCRC[i])
	}

	got := crc16(infoBlockWithCRC[16 : len(infoBlockWithCRC)-tailBits])
	return got == want
}
