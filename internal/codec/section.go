package codec

import (
	"encoding/binary"

	"github.com/pkroam/pkroam/internal/codeerr"
)

const (
	// MinSaveLength is the minimum byte length of a valid save image.
	MinSaveLength = 131072

	slotAOffset  = 0x0000
	slotBOffset  = 0xE000
	sectionSize  = 0x1000
	sectionCount = 14
	// SectionDataSize is the number of bytes at the start of a section that
	// participate in the checksum.
	SectionDataSize = 3968

	trailerIDOffset       = 0x0FF4
	trailerChecksumOffset = 0x0FF6
	trailerSaveIndexOff   = 0x0FFC
)

// SectionEngine locates and addresses the 14 fixed-size sections of the
// current save slot within a 128 KiB save image, accounting for the
// rotation between logical and physical section ids.
type SectionEngine struct {
	buf          []byte
	currentSlot  int // slotAOffset or slotBOffset
	rotation     int // (14 - id_at_physical_0) mod 14
}

// Open validates and wraps a save image. It never verifies checksums — that
// is left to Verify, so that repair flows can inspect a damaged save.
func Open(buf []byte) (*SectionEngine, error) {
	if len(buf) < MinSaveLength {
		return nil, codeerr.New(codeerr.KindBadLength, "save image shorter than 131072 bytes")
	}

	indexA := binary.LittleEndian.Uint32(buf[slotAOffset+trailerSaveIndexOff:])
	indexB := binary.LittleEndian.Uint32(buf[slotBOffset+trailerSaveIndexOff:])

	var currentSlot int
	switch {
	case indexA == 0xFFFFFFFF:
		// Both empty (indexB also 0xFFFFFFFF) resolves here too: slot B wins.
		currentSlot = slotBOffset
	case indexB == 0xFFFFFFFF:
		currentSlot = slotAOffset
	case indexA > indexB:
		currentSlot = slotAOffset
	default:
		currentSlot = slotBOffset
	}

	idAtPhysical0 := binary.LittleEndian.Uint16(buf[currentSlot+trailerIDOffset:])
	rotation := (sectionCount - int(idAtPhysical0)) % sectionCount

	e := &SectionEngine{buf: buf, currentSlot: currentSlot, rotation: rotation}

	seen := make([]bool, sectionCount)
	for physical := 0; physical < sectionCount; physical++ {
		off := currentSlot + physical*sectionSize
		id := int(binary.LittleEndian.Uint16(buf[off+trailerIDOffset:]))
		if id < 0 || id >= sectionCount || seen[id] {
			return nil, codeerr.New(codeerr.KindBadRotation, "logical section ids are not a permutation of 0..13")
		}
		seen[id] = true
	}

	return e, nil
}

// PhysicalOffsetFor returns the byte offset, within the full save buffer,
// of the start of the given logical section's 0x1000-byte trailer-bearing
// record.
func (e *SectionEngine) PhysicalOffsetFor(logicalID int) int {
	physical := (logicalID + e.rotation) % sectionCount
	return e.currentSlot + physical*sectionSize
}

// View returns a slice into the mutable save buffer for the given logical
// section, restricted to [start:end) within that section's 0x1000 bytes.
func (e *SectionEngine) View(logicalID, start, end int) []byte {
	off := e.PhysicalOffsetFor(logicalID)
	return e.buf[off+start : off+end]
}

// Verify recomputes each section's checksum and compares it against the
// stored trailer value, returning a BadChecksum error on any mismatch.
func (e *SectionEngine) Verify() error {
	for id := 0; id < sectionCount; id++ {
		off := e.PhysicalOffsetFor(id)
		data := e.buf[off : off+SectionDataSize]
		stored := binary.LittleEndian.Uint16(e.buf[off+trailerChecksumOffset:])
		if computeChecksum(data) != stored {
			return codeerr.New(codeerr.KindBadChecksum, "section checksum mismatch")
		}
	}
	return nil
}

// RecomputeAll computes and writes all 14 section checksums into their
// trailers.
func (e *SectionEngine) RecomputeAll() {
	for id := 0; id < sectionCount; id++ {
		off := e.PhysicalOffsetFor(id)
		data := e.buf[off : off+SectionDataSize]
		checksum := computeChecksum(data)
		binary.LittleEndian.PutUint16(e.buf[off+trailerChecksumOffset:], checksum)
	}
}

// Bytes returns the full underlying save buffer (including the non-current
// slot, preserved byte-for-byte).
func (e *SectionEngine) Bytes() []byte { return e.buf }

// computeChecksum folds the u32 sum of 992 little-endian u32 words into a
// u16: low 16 bits plus high 16 bits.
func computeChecksum(data []byte) uint16 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		sum += binary.LittleEndian.Uint32(data[i:])
	}
	return uint16(sum&0xFFFF) + uint16(sum>>16)
}
