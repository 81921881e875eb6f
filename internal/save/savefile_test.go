package save

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkroam/pkroam/internal/codec"
	"github.com/pkroam/pkroam/internal/gamelayout"
)

const testSaveLength = 131072

// buildEmptySave constructs a minimal, internally-consistent Emerald save
// image: one slot (A), sections in identity rotation, trainer info filled
// in, checksums recomputed, everything else zero.
func buildEmptySave(t *testing.T, publicID, secretID uint16) []byte {
	t.Helper()
	buf := make([]byte, testSaveLength)

	// Slot B stays the untouched, "empty" slot.
	binary.LittleEndian.PutUint32(buf[0xE000+0x0FFC:], 0xFFFFFFFF)

	for physical := 0; physical < 14; physical++ {
		off := physical * 0x1000
		binary.LittleEndian.PutUint16(buf[off+0x0FF4:], uint16(physical))
		binary.LittleEndian.PutUint32(buf[off+0x0FFC:], 1)
	}

	section0 := buf[0:0x1000]
	copy(section0[0x00:0x07], codec.EncodeText("MAY", 7))
	section0[0x08] = 0x00 // male
	binary.LittleEndian.PutUint32(section0[0x0A:], uint32(publicID)|uint32(secretID)<<16)
	binary.LittleEndian.PutUint32(section0[0xAC:], 2) // non-0/1 => Emerald

	recomputeAllChecksums(buf)
	return buf
}

func recomputeAllChecksums(buf []byte) {
	for physical := 0; physical < 14; physical++ {
		off := physical * 0x1000
		data := buf[off : off+codec.SectionDataSize]
		var sum uint32
		for i := 0; i < len(data); i += 4 {
			sum += binary.LittleEndian.Uint32(data[i:])
		}
		checksum := uint16(sum&0xFFFF) + uint16(sum>>16)
		binary.LittleEndian.PutUint16(buf[off+0x0FF6:], checksum)
	}
}

func writeSave(t *testing.T, buf []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "emerald.sav")
	require.NoError(t, os.WriteFile(path, buf, 0o600))
	return path
}

func TestOpen_ParsesTrainerInfoAndGame(t *testing.T) {
	path := writeSave(t, buildEmptySave(t, 12345, 6789))

	sf, err := Open(path)
	require.NoError(t, err)

	assert.Equal(t, "MAY", sf.TrainerInfo().PlayerName)
	assert.Equal(t, uint16(12345), sf.TrainerInfo().PublicID)
	assert.Equal(t, uint16(6789), sf.TrainerInfo().SecretID)
	assert.Equal(t, gamelayout.Emerald, sf.GameCode())
	assert.NoError(t, sf.Verify())
}

func TestPutSlot_ThenGetSlot_RoundTrip(t *testing.T) {
	path := writeSave(t, buildEmptySave(t, 1, 2))
	sf, err := Open(path)
	require.NoError(t, err)

	creature := &codec.Creature{
		Personality: 0x12345678,
		OriginalID:  uint32(1) | uint32(2)<<16,
	}
	creature.Growth.Species = 25
	blob := creature.Encode()

	ok, err := sf.PutSlot(1, 1, blob, false)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := sf.GetSlot(1, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint16(25), got.Species())
}

func TestPutSlot_RefusesOccupiedSlotWithoutForce(t *testing.T) {
	path := writeSave(t, buildEmptySave(t, 1, 2))
	sf, err := Open(path)
	require.NoError(t, err)

	creature := &codec.Creature{Personality: 1, OriginalID: 1}
	creature.Growth.Species = 1
	blob := creature.Encode()

	ok, err := sf.PutSlot(3, 3, blob, false)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = sf.PutSlot(3, 3, blob, false)
	require.NoError(t, err)
	assert.False(t, ok, "occupied slot must reject a non-forced write")
}

func TestTakeSlot_EmptiesAndReturnsCreature(t *testing.T) {
	path := writeSave(t, buildEmptySave(t, 1, 2))
	sf, err := Open(path)
	require.NoError(t, err)

	creature := &codec.Creature{Personality: 99, OriginalID: 1}
	creature.Growth.Species = 7
	blob := creature.Encode()
	_, err = sf.PutSlot(1, 1, blob, false)
	require.NoError(t, err)

	taken, err := sf.TakeSlot(1, 1)
	require.NoError(t, err)
	require.NotNil(t, taken)
	assert.Equal(t, uint16(7), taken.Species())

	empty, err := sf.GetSlot(1, 1)
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestSlotStraddle_BoundaryBoxes(t *testing.T) {
	path := writeSave(t, buildEmptySave(t, 1, 2))
	sf, err := Open(path)
	require.NoError(t, err)

	// Box 2 slot 20 is the verified straddling pair under this save's
	// identity rotation: absoluteOffset 3924 puts intra+80 at 4004, past
	// the 3968-byte section data size, so the record splits 44/36 bytes
	// across logical sections 5 and 6. Exercising it confirms the
	// two-piece copy path works without panicking or corrupting data.
	creature := &codec.Creature{Personality: 42, OriginalID: 1}
	creature.Growth.Species = 150
	blob := creature.Encode()

	ok, err := sf.PutSlot(2, 20, blob, false)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := sf.GetSlot(2, 20)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint16(150), got.Species())
}

func TestWrite_ProducesVerifiableSave(t *testing.T) {
	path := writeSave(t, buildEmptySave(t, 1, 2))
	sf, err := Open(path)
	require.NoError(t, err)

	creature := &codec.Creature{Personality: 7, OriginalID: 1}
	creature.Growth.Species = 4
	blob := creature.Encode()
	_, err = sf.PutSlot(2, 5, blob, false)
	require.NoError(t, err)

	require.NoError(t, sf.WriteInPlace())

	reopened, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, reopened.Verify())

	got, err := reopened.GetSlot(2, 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint16(4), got.Species())
}
