package arena

// slab is a chunked bump allocator for values of one type. Chunks never move,
// so slices handed out stay valid until reset.
type slab[T any] struct {
	chunks [][]T
	chunk  int // index of the chunk being filled
	used   int // elements used in chunks[chunk]
	size   int // minimum chunk length
	live   int // elements handed out since the last reset
}

func newSlab[T any](size int) slab[T] {
	return slab[T]{size: size}
}

// alloc returns n contiguous elements. The returned slice has cap == len so
// appending to it can never spill into a neighbour.
func (s *slab[T]) alloc(n int) []T {
	if n == 0 {
		return nil
	}
	for s.chunk < len(s.chunks) {
		c := s.chunks[s.chunk]
		if len(c)-s.used >= n {
			out := c[s.used : s.used+n : s.used+n]
			s.used += n
			s.live += n
			return out
		}
		s.chunk++
		s.used = 0
	}

	size := s.size
	if n > size {
		size = n
	}
	s.chunks = append(s.chunks, make([]T, size))
	s.chunk = len(s.chunks) - 1
	s.used = n
	s.live += n
	return s.chunks[s.chunk][:n:n]
}

// reset rewinds the slab. When poison is set, released elements are
// overwritten with fill.
func (s *slab[T]) reset(poison bool, fill T) {
	if poison {
		for i := 0; i <= s.chunk && i < len(s.chunks); i++ {
			c := s.chunks[i]
			end := len(c)
			if i == s.chunk {
				end = s.used
			}
			for j := 0; j < end; j++ {
				c[j] = fill
			}
		}
	}
	s.chunk = 0
	s.used = 0
	s.live = 0
}

func (s *slab[T]) release() {
	s.chunks = nil
	s.chunk = 0
	s.used = 0
	s.live = 0
}

func (s *slab[T]) capacity() int {
	n := 0
	for _, c := range s.chunks {
		n += len(c)
	}
	return n
}

// owns reports whether p points into one of the slab's chunks.
func (s *slab[T]) owns(p *T) bool {
	for _, c := range s.chunks {
		if len(c) == 0 {
			continue
		}
		if within(c, p) {
			return true
		}
	}
	return false
}
