package primitives

import "fmt"

// TableID Methods
// =============================================================================

// IsValid checks if the TableID is a valid non-zero identifier.
func (t TableID) IsValid() bool {
	return t != 0
}

// AsUint64 returns the TableID as a uint64 for serialization or storage.
func (t TableID) AsUint64() uint64 {
	return uint64(t)
}

// String returns a string representation of the TableID.
func (t TableID) String() string {
	return fmt.Sprintf("TableID(%d)", t)
}

// ToFileID converts the TableID back to its underlying FileID.
func (t TableID) ToFileID() FileID {
	return FileID(t)
}

// AsIndexID converts the TableID to an IndexID with the same underlying value.
func (t TableID) AsIndexID() IndexID {
	return IndexID(t)
}

// IndexID Methods
// =============================================================================

// IsValid checks if the IndexID is a valid non-zero identifier.
func (i IndexID) IsValid() bool {
	return i != 0
}

// AsUint64 returns the IndexID as a uint64 for serialization or storage.
func (i IndexID) AsUint64() uint64 {
	return uint64(i)
}

// String returns a string representation of the IndexID.
func (i IndexID) String() string {
	return fmt.Sprintf("IndexID(%d)", i)
}

// ToFileID converts the IndexID back to its underlying FileID.
func (i IndexID) ToFileID() FileID {
	return FileID(i)
}

// AsTableID converts the IndexID to a TableID with the same underlying value.
func (i IndexID) AsTableID() TableID {
	return TableID(i)
}

// Constructors
// =============================================================================

// NewFileIDFromUint64 creates a FileID from a raw uint64 value.
func NewFileIDFromUint64(value uint64) FileID {
	return FileID(value)
}

// NewTableIDFromUint64 creates a TableID from a raw uint64 value.
func NewTableIDFromUint64(value uint64) TableID {
	return TableID(value)
}

// NewIndexIDFromUint64 creates an IndexID from a raw uint64 value.
func NewIndexIDFromUint64(value uint64) IndexID {
	return IndexID(value)
}

// NewTableIDFromFileID creates a TableID from a FileID.
func NewTableIDFromFileID(id FileID) TableID {
	return TableID(id)
}

// NewIndexIDFromFileID creates an IndexID from a FileID.
func NewIndexIDFromFileID(id FileID) IndexID {
	return IndexID(id)
}
