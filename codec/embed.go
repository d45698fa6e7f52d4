package codec

import "github.com/arloliu/zfp/bitstream"

// encodeInts emits the bit planes of data from the most significant down,
// stopping after maxprec planes or maxbits bits, and returns the number of
// bits written.
//
// Within a plane the first n bits (values already known to be significant)
// are written verbatim; the remaining bits are group tested: a one says that
// some later value has a one in this plane, followed by unary coding of its
// position.
func encodeInts[U unsigned](s *bitstream.Bitstream, intprec, maxbits, maxprec uint, data []U) uint {
	if len(data) > wordBits {
		return encodeManyInts(s, intprec, maxbits, maxprec, data)
	}

	size := uint(len(data))
	kmin := uint(0)
	if intprec > maxprec {
		kmin = intprec - maxprec
	}
	bits := maxbits
	n := uint(0)

	for k := intprec; bits > 0 && k > kmin; {
		k--
		// step 1: gather bit plane k
		var x uint64
		for i, v := range data {
			x += uint64((v>>k)&1) << uint(i)
		}
		// step 2: emit the first n bits verbatim
		m := min(n, bits)
		bits -= m
		x = s.WriteBits(x, m)
		// step 3: group test and unary code the rest
		for n < size && bits > 0 {
			bits--
			if s.WriteBit(boolBit(x != 0)) == 0 {
				break
			}
			for n < size-1 && bits > 0 {
				bits--
				if s.WriteBit(x&1) != 0 {
					break
				}
				x >>= 1
				n++
			}
			x >>= 1
			n++
		}
	}

	return maxbits - bits
}

// encodeManyInts is encodeInts for blocks of more than 64 values.
func encodeManyInts[U unsigned](s *bitstream.Bitstream, intprec, maxbits, maxprec uint, data []U) uint {
	size := uint(len(data))
	kmin := uint(0)
	if intprec > maxprec {
		kmin = intprec - maxprec
	}
	bits := maxbits
	n := uint(0)

	for k := intprec; bits > 0 && k > kmin; {
		k--
		m := min(n, bits)
		bits -= m
		for i := range m {
			s.WriteBit(uint64((data[i] >> k) & 1))
		}
		// ones left in the untested part of the plane
		c := 0
		for i := m; i < size; i++ {
			c += int((data[i] >> k) & 1)
		}
		for n < size && bits > 0 {
			bits--
			if s.WriteBit(boolBit(c != 0)) == 0 {
				break
			}
			for n < size-1 && bits > 0 {
				bits--
				if s.WriteBit(uint64((data[n]>>k)&1)) != 0 {
					break
				}
				n++
			}
			c--
			n++
		}
	}

	return maxbits - bits
}

// decodeInts reverses encodeInts. data is overwritten.
func decodeInts[U unsigned](s *bitstream.Bitstream, intprec, maxbits, maxprec uint, data []U) uint {
	clear(data)
	if len(data) > wordBits {
		return decodeManyInts(s, intprec, maxbits, maxprec, data)
	}

	size := uint(len(data))
	kmin := uint(0)
	if intprec > maxprec {
		kmin = intprec - maxprec
	}
	bits := maxbits
	n := uint(0)

	for k := intprec; bits > 0 && k > kmin; {
		k--
		m := min(n, bits)
		bits -= m
		x := s.ReadBits(m)
		for n < size && bits > 0 {
			bits--
			if s.ReadBit() == 0 {
				break
			}
			for n < size-1 && bits > 0 {
				bits--
				if s.ReadBit() != 0 {
					break
				}
				n++
			}
			x += uint64(1) << n
			n++
		}
		// deposit bit plane k
		for i := 0; x != 0; i++ {
			data[i] += U(x&1) << k
			x >>= 1
		}
	}

	return maxbits - bits
}

func decodeManyInts[U unsigned](s *bitstream.Bitstream, intprec, maxbits, maxprec uint, data []U) uint {
	size := uint(len(data))
	kmin := uint(0)
	if intprec > maxprec {
		kmin = intprec - maxprec
	}
	bits := maxbits
	n := uint(0)

	for k := intprec; bits > 0 && k > kmin; {
		k--
		m := min(n, bits)
		bits -= m
		for i := range m {
			if s.ReadBit() != 0 {
				data[i] += U(1) << k
			}
		}
		for n < size && bits > 0 {
			bits--
			if s.ReadBit() == 0 {
				break
			}
			for n < size-1 && bits > 0 {
				bits--
				if s.ReadBit() != 0 {
					break
				}
				n++
			}
			data[n] += U(1) << k
			n++
		}
	}

	return maxbits - bits
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}

	return 0
}
