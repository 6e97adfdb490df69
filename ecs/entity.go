package ecs

// EntityId encodes a generation (upper 32 bits) and a slot index (lower 32 bits).
// Index 0 is never handed out, so the zero EntityId means "no entity".
type EntityId uint64

// NewEntityId creates an EntityId from a slot index and generation
func NewEntityId(index uint32, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the generation counter from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

// Valid reports whether the ID refers to a slot at all. It does not check liveness;
// use Storage.Alive for that.
func (e EntityId) Valid() bool {
	return e.Index() != 0
}
