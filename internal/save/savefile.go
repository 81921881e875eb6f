// Package save composes codec.SectionEngine and codec.Creature into
// the full save-file model: trainer info, party, 14 boxes of 30 slots each,
// straddle-aware slot I/O, and dex-seen bit flips.
package save

import (
	"os"
	"path/filepath"

	"github.com/mohae/deepcopy"

	"github.com/pkroam/pkroam/internal/codec"
	"github.com/pkroam/pkroam/internal/codeerr"
	"github.com/pkroam/pkroam/internal/gamelayout"
	"github.com/pkroam/pkroam/internal/rlog"
)

const (
	boxCount      = 14
	slotsPerBox   = 30
	boxBaseOffset = 4 // bytes into logical section 5 where box 1 slot 1 begins
)

// SaveFile is the open, mutable in-memory form of a 128 KiB save image.
type SaveFile struct {
	path    string
	engine  *codec.SectionEngine
	trainer TrainerInfo
	game    gamelayout.Code
	layout  gamelayout.Layout
}

// Open reads path, validates its structure via codec.Open (without
// verifying checksums — that is the caller's choice via Verify), and parses
// trainer info and game code.
func Open(path string) (*SaveFile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, codeerr.Wrap(codeerr.KindStoreReadFailed, err, "reading save file")
	}

	engine, err := codec.Open(buf)
	if err != nil {
		return nil, err
	}

	sectionZero := engine.View(0, 0, codec.SectionDataSize)
	trainer, game, err := parseTrainerInfo(sectionZero)
	if err != nil {
		return nil, err
	}

	return &SaveFile{
		path:    path,
		engine:  engine,
		trainer: trainer,
		game:    game,
		layout:  gamelayout.For(game),
	}, nil
}

// TrainerInfo returns the save's decoded trainer info. Infallible after Open.
func (s *SaveFile) TrainerInfo() TrainerInfo { return s.trainer }

// GameCode returns which title produced the save.
func (s *SaveFile) GameCode() gamelayout.Code { return s.game }

// Verify recomputes every section checksum and compares it to the stored
// value.
func (s *SaveFile) Verify() error { return s.engine.Verify() }

// PartyMember pairs a creature with its 1-based slot in the party.
type PartyMember struct {
	Slot     int
	Creature *codec.Creature
}

// Party returns the 0..6 creatures in the player's active team.
func (s *SaveFile) Party() ([]PartyMember, error) {
	sectionOne := s.engine.View(1, 0, codec.SectionDataSize)
	teamSizeOff := s.layout.TeamSizeOffset()
	teamSize := int(le32(sectionOne[teamSizeOff:]))
	if teamSize > 6 {
		rlog.Warn("party size exceeds 6, clamping", rlog.F("reported", teamSize))
		teamSize = 6
	}

	out := make([]PartyMember, 0, teamSize)
	recordStart := teamSizeOff + 4
	for i := 0; i < teamSize; i++ {
		start := recordStart + i*codec.SizeParty
		blob := sectionOne[start : start+codec.SizeParty]
		creature, err := codec.DecodeCreature(blob)
		if err != nil {
			return nil, err
		}
		out = append(out, PartyMember{Slot: i + 1, Creature: deepcopy.Copy(creature).(*codec.Creature)})
	}
	return out, nil
}

// BoxMember pairs a creature with its 1-based slot within a box.
type BoxMember struct {
	Slot     int
	Creature *codec.Creature
}

// GetBox returns every non-empty slot in the given box (1..14), omitting
// slots whose 80 bytes are all zero.
func (s *SaveFile) GetBox(box int) ([]BoxMember, error) {
	var out []BoxMember
	for slot := 1; slot <= slotsPerBox; slot++ {
		c, err := s.GetSlot(box, slot)
		if err != nil {
			return nil, err
		}
		if c != nil {
			out = append(out, BoxMember{Slot: slot, Creature: c})
		}
	}
	return out, nil
}

// GetSlot decodes the creature at (box, slot), or returns nil if the slot is
// empty (all 80 bytes zero).
func (s *SaveFile) GetSlot(box, slot int) (*codec.Creature, error) {
	blob, err := s.readSlotBytes(box, slot)
	if err != nil {
		return nil, err
	}
	if isAllZero(blob) {
		return nil, nil
	}
	c, err := codec.DecodeCreature(blob)
	if err != nil {
		return nil, err
	}
	return deepcopy.Copy(c).(*codec.Creature), nil
}

// TakeSlot decodes and removes the creature at (box, slot), recomputing
// section checksums in memory. Returns nil if the slot was already empty.
func (s *SaveFile) TakeSlot(box, slot int) (*codec.Creature, error) {
	c, err := s.GetSlot(box, slot)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	zero := make([]byte, codec.SizeBox)
	if _, err := s.PutSlot(box, slot, zero, true); err != nil {
		return nil, err
	}
	s.engine.RecomputeAll()
	return c, nil
}

// PutSlot writes blob (an 80-byte box-form creature record, or all-zero to
// clear) into (box, slot). It returns false without writing if the target
// is non-empty and force is false. On a successful write of a valid
// creature, the species is marked owned and seen in the dex bitmaps. It
// does not recompute section checksums — batch writes before Flush/Write.
func (s *SaveFile) PutSlot(box, slot int, blob []byte, force bool) (bool, error) {
	if len(blob) != codec.SizeBox {
		return false, codeerr.New(codeerr.KindMalformedCreature, "box slot payload must be 80 bytes")
	}
	logicalID, intra, err := slotLocation(box, slot)
	if err != nil {
		return false, err
	}

	if intra+codec.SizeBox > codec.SectionDataSize {
		firstLen := codec.SectionDataSize - intra
		secondLen := codec.SizeBox - firstLen
		first := s.engine.View(logicalID, intra, codec.SectionDataSize)
		second := s.engine.View(logicalID+1, 0, secondLen)

		if !force && (!isAllZero(first) || !isAllZero(second)) {
			return false, nil
		}
		copy(first, blob[:firstLen])
		copy(second, blob[firstLen:])
	} else {
		dest := s.engine.View(logicalID, intra, intra+codec.SizeBox)
		if !force && !isAllZero(dest) {
			return false, nil
		}
		copy(dest, blob)
	}

	if !isAllZero(blob) {
		if c, err := codec.DecodeCreature(blob); err == nil && !c.IsEmpty() {
			s.markDexSeen(c.Species())
		}
	}
	return true, nil
}

// Flush recomputes all section checksums in memory without touching disk.
func (s *SaveFile) Flush() { s.engine.RecomputeAll() }

// Write recomputes all section checksums and atomically writes the entire
// 128 KiB buffer to path (write-to-tempfile + rename).
func (s *SaveFile) Write(path string) error {
	s.engine.RecomputeAll()
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pkroam-save-*")
	if err != nil {
		return codeerr.Wrap(codeerr.KindSaveWriteFailed, err, "creating temp file")
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(s.engine.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return codeerr.Wrap(codeerr.KindSaveWriteFailed, err, "writing temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return codeerr.Wrap(codeerr.KindSaveWriteFailed, err, "closing temp file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return codeerr.Wrap(codeerr.KindSaveWriteFailed, err, "renaming temp file into place")
	}
	return nil
}

// WriteInPlace writes back to the path the save was opened from.
func (s *SaveFile) WriteInPlace() error { return s.Write(s.path) }

// readSlotBytes copies a slot's 80 bytes, joining the two pieces of a
// straddled slot.
func (s *SaveFile) readSlotBytes(box, slot int) ([]byte, error) {
	logicalID, intra, err := slotLocation(box, slot)
	if err != nil {
		return nil, err
	}
	out := make([]byte, codec.SizeBox)
	if intra+codec.SizeBox > codec.SectionDataSize {
		firstLen := codec.SectionDataSize - intra
		copy(out[:firstLen], s.engine.View(logicalID, intra, codec.SectionDataSize))
		copy(out[firstLen:], s.engine.View(logicalID+1, 0, codec.SizeBox-firstLen))
	} else {
		copy(out, s.engine.View(logicalID, intra, intra+codec.SizeBox))
	}
	return out, nil
}

// slotLocation computes the (logical section id, intra-section offset) for
// a 1-based (box, slot) pair.
func slotLocation(box, slot int) (int, int, error) {
	if box < 1 || box > boxCount || slot < 1 || slot > slotsPerBox {
		return 0, 0, codeerr.New(codeerr.KindSlotOutOfRange, "box/slot outside 1..14 x 1..30")
	}
	absoluteEntry := (box-1)*slotsPerBox + (slot - 1)
	absoluteOffset := absoluteEntry*codec.SizeBox + boxBaseOffset
	logicalID := 5 + absoluteOffset/codec.SectionDataSize
	intra := absoluteOffset % codec.SectionDataSize
	return logicalID, intra, nil
}

// markDexSeen sets the owned bit and all three seen bits for species s
// (1..386) across logical sections 0, 1, and 4.
func (s *SaveFile) markDexSeen(species uint16) {
	if species == 0 || species > 386 {
		return
	}
	byteIdx := int(species-1) >> 3
	bitMask := byte(1) << (uint(species-1) & 7)

	setBit(s.engine.View(0, s.layout.DexOwnedOffset(), codec.SectionDataSize), byteIdx, bitMask)
	setBit(s.engine.View(0, s.layout.DexSeenAOffset(), codec.SectionDataSize), byteIdx, bitMask)
	setBit(s.engine.View(1, s.layout.DexSeenBOffset(), codec.SectionDataSize), byteIdx, bitMask)
	setBit(s.engine.View(4, s.layout.DexSeenCOffset(), codec.SectionDataSize), byteIdx, bitMask)
}

func setBit(region []byte, byteIdx int, mask byte) {
	if byteIdx < len(region) {
		region[byteIdx] |= mask
	}
}

func isAllZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
