//go:build goexperiment.arenas

package corebpe

import "arena"

// arenaStore packs every vocabulary entry into a single arena-backed blob
// plus an offset table, so Close can release the whole vocabulary in one
// call instead of leaving it to the garbage collector. AppendInto copies out
// of the arena so no arena-backed slice ever escapes to the heap.
type arenaStore struct {
	a    *arena.Arena
	blob []byte
	off  []uint32
}

func newTokenStore(encoder map[string]Rank) (tokenStore, error) {
	a := arena.NewArena()

	var maxID Rank
	for _, id := range encoder {
		if id > maxID {
			maxID = id
		}
	}
	size := int(maxID) + 1

	lens := arena.MakeSlice[uint32](a, size, size)
	total := 0
	for piece, id := range encoder {
		if lens[int(id)] == 0 {
			lens[int(id)] = uint32(len(piece))
			total += len(piece)
		}
	}

	blob := arena.MakeSlice[byte](a, total, total)
	off := arena.MakeSlice[uint32](a, size+1, size+1)
	pos := 0
	for i := 0; i < size; i++ {
		off[i] = uint32(pos)
		n := int(lens[i])
		if n > 0 {
			for piece, id := range encoder {
				if int(id) != i {
					continue
				}
				copy(blob[pos:pos+n], piece)
				break
			}
			pos += n
		}
	}
	off[size] = uint32(pos)
	return &arenaStore{a: a, blob: blob, off: off}, nil
}

func (s *arenaStore) AppendInto(dst *[]byte, id Rank) bool {
	if int(id) >= len(s.off)-1 {
		return false
	}
	a, b := s.off[id], s.off[id+1]
	if a == b {
		return false
	}
	*dst = append(*dst, s.blob[a:b]...)
	return true
}

func (s *arenaStore) Close() { s.a.Free() }
