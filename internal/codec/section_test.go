package codec

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// buildIdentitySave returns a minimal, checksum-valid 128 KiB save with
// slot A active, sections laid out in identity order (logical id ==
// physical id), and slot B marked empty via the 0xFFFFFFFF sentinel.
func buildIdentitySave() []byte {
	buf := make([]byte, MinSaveLength)
	for physical := 0; physical < sectionCount; physical++ {
		off := slotAOffset + physical*sectionSize
		binary.LittleEndian.PutUint16(buf[off+trailerIDOffset:], uint16(physical))
		binary.LittleEndian.PutUint32(buf[off+trailerSaveIndexOff:], 5)
	}
	binary.LittleEndian.PutUint32(buf[slotBOffset+trailerSaveIndexOff:], 0xFFFFFFFF)

	e := &SectionEngine{buf: buf, currentSlot: slotAOffset, rotation: 0}
	e.RecomputeAll()
	return buf
}

func TestOpen_SelectsNewerSlotAndDerivesRotation(t *testing.T) {
	buf := buildIdentitySave()
	// Give slot B an older save index than slot A's 5.
	binary.LittleEndian.PutUint32(buf[slotBOffset+trailerSaveIndexOff:], 4)
	e, err := Open(buf)
	require.NoError(t, err)
	require.NoError(t, e.Verify())
	require.Equal(t, slotAOffset, e.currentSlot)
	require.Equal(t, 0, e.rotation)
}

// TestOpen_BothSlotsEmpty_ChoosesSlotB covers spec.md §3 invariant 3: when
// both save-indices read 0xFFFFFFFF, slot B is current, not slot A.
func TestOpen_BothSlotsEmpty_ChoosesSlotB(t *testing.T) {
	buf := make([]byte, MinSaveLength)
	for physical := 0; physical < sectionCount; physical++ {
		off := slotBOffset + physical*sectionSize
		binary.LittleEndian.PutUint16(buf[off+trailerIDOffset:], uint16(physical))
	}
	binary.LittleEndian.PutUint32(buf[slotAOffset+trailerSaveIndexOff:], 0xFFFFFFFF)
	binary.LittleEndian.PutUint32(buf[slotBOffset+trailerSaveIndexOff:], 0xFFFFFFFF)

	e := &SectionEngine{buf: buf, currentSlot: slotBOffset, rotation: 0}
	e.RecomputeAll()

	opened, err := Open(buf)
	require.NoError(t, err)
	require.NoError(t, opened.Verify())
	require.Equal(t, slotBOffset, opened.currentSlot)
}

func TestOpen_RejectsShortBuffer(t *testing.T) {
	_, err := Open(make([]byte, MinSaveLength-1))
	require.Error(t, err)
}

func TestOpen_RejectsNonPermutationIDs(t *testing.T) {
	buf := buildIdentitySave()
	// Duplicate section 0's id onto section 1, breaking the permutation.
	binary.LittleEndian.PutUint16(buf[slotAOffset+sectionSize+trailerIDOffset:], 0)
	_, err := Open(buf)
	require.Error(t, err)
}

func TestVerify_DetectsCorruption(t *testing.T) {
	buf := buildIdentitySave()
	e, err := Open(buf)
	require.NoError(t, err)
	require.NoError(t, e.Verify())

	buf[slotAOffset] ^= 0xFF
	require.Error(t, e.Verify())
}

func TestRecomputeAll_MakesVerifyPass(t *testing.T) {
	buf := buildIdentitySave()
	e, err := Open(buf)
	require.NoError(t, err)

	buf[slotAOffset+8] ^= 0xFF
	require.Error(t, e.Verify())

	e.RecomputeAll()
	require.NoError(t, e.Verify())
}
