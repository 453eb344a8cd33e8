package um

// cowBuffer is the backing storage for one live array. Two heap
// entries may hold distinct *cowBuffer values over the same backing
// slice, both with shared set, which is how LoadProg avoids an
// unconditional deep copy of the source array. The first write through
// either entry clones the slice into a fresh, unshared buffer for that
// entry; the other entry keeps the original slice, and because its
// shared flag stays set, its own next write clones once as well.
type cowBuffer struct {
	data   []Platter
	shared bool
}

func newBuffer(data []Platter) *cowBuffer {
	return &cowBuffer{data: data}
}

// ownedForWrite returns a buffer it is safe to mutate in place,
// cloning the underlying slice first if it is currently shared with
// another heap entry.
func (b *cowBuffer) ownedForWrite() *cowBuffer {
	if !b.shared {
		return b
	}
	clone := make([]Platter, len(b.data))
	copy(clone, b.data)
	return &cowBuffer{data: clone}
}

// arrayHeap owns every live array and the monotonic id allocator. Id 0
// is reserved for the program array and is never freed.
type arrayHeap struct {
	arrays map[Platter]*cowBuffer
	nextID Platter
}

func newArrayHeap(program []Platter) *arrayHeap {
	h := &arrayHeap{
		arrays: make(map[Platter]*cowBuffer),
		nextID: 1,
	}
	h.arrays[0] = newBuffer(program)
	return h
}

func (h *arrayHeap) alloc(size Platter) (Platter, error) {
	if h.nextID == 0 {
		// The counter wrapped around to the reserved, permanently
		// live id 0: treated as exhaustion, not silent reuse, since
		// reusing it would alias a fresh allocation onto array 0.
		return 0, ErrIdSpaceExhausted
	}
	id := h.nextID
	h.nextID++
	h.arrays[id] = newBuffer(make([]Platter, size))
	return id, nil
}

func (h *arrayHeap) free(id Platter) error {
	if id == 0 {
		return ErrFreeArray0
	}
	if _, ok := h.arrays[id]; !ok {
		return ErrFreeUnknownArray
	}
	delete(h.arrays, id)
	return nil
}

func (h *arrayHeap) read(id, offset Platter) (Platter, error) {
	buf, ok := h.arrays[id]
	if !ok {
		return 0, ErrUnknownArray
	}
	if int(offset) >= len(buf.data) {
		return 0, ErrOutOfBounds
	}
	return buf.data[offset], nil
}

func (h *arrayHeap) write(id, offset, value Platter) error {
	buf, ok := h.arrays[id]
	if !ok {
		return ErrUnknownArray
	}
	if int(offset) >= len(buf.data) {
		return ErrOutOfBounds
	}
	buf = buf.ownedForWrite()
	buf.data[offset] = value
	h.arrays[id] = buf
	return nil
}

// loadProgram implements opcode 12's array-0 replacement. sourceID ==
// 0 is the hot-path unconditional jump: no copy happens at all, the
// caller is expected to only update ip. For any other source, the
// program array and the source array get separate shared cowBuffers
// over the same backing slice until one of them is next written.
func (h *arrayHeap) loadProgram(sourceID Platter) ([]Platter, error) {
	if sourceID == 0 {
		return h.arrays[0].data, nil
	}
	src, ok := h.arrays[sourceID]
	if !ok {
		return nil, ErrUnknownLoadSource
	}
	src.shared = true
	aliased := &cowBuffer{data: src.data, shared: true}
	h.arrays[0] = aliased
	return aliased.data, nil
}

func (h *arrayHeap) program() []Platter {
	return h.arrays[0].data
}
