package codec

import (
	"encoding/binary"

	"github.com/pkroam/pkroam/internal/codeerr"
	"github.com/pkroam/pkroam/internal/rlog"
)

const (
	// SizeBox is the on-disk size of a creature record stored in a box slot.
	SizeBox = 80
	// SizeParty is the on-disk size of a creature record in the party list;
	// the 20 trailing bytes are runtime battle stats, not part of identity.
	SizeParty = 100

	headerSize = 32
	dataSize   = 48
	subSize    = 12
	dataStart  = headerSize
	dataEnd    = headerSize + dataSize
	numSubstrs = 4
)

// permTable is the 24-row permutation table mapping P mod 24 to the
// (Growth, Attacks, EvsConditions, Miscellaneous) physical offsets within
// the 48-byte data region. Each row is a permutation of {0,12,24,36}. This
// table is not derivable from P by formula — it must be looked up exactly.
var permTable = [24][numSubstrs]int{
	{0, 12, 24, 36}, {0, 12, 36, 24}, {0, 24, 12, 36}, {0, 36, 12, 24},
	{0, 24, 36, 12}, {0, 36, 24, 12}, {12, 0, 24, 36}, {12, 0, 36, 24},
	{24, 0, 12, 36}, {36, 0, 12, 24}, {24, 0, 36, 12}, {36, 0, 24, 12},
	{12, 24, 0, 36}, {12, 36, 0, 24}, {24, 12, 0, 36}, {36, 12, 0, 24},
	{24, 36, 0, 12}, {36, 24, 0, 12}, {12, 24, 36, 0}, {12, 36, 24, 0},
	{24, 12, 36, 0}, {36, 12, 24, 0}, {24, 36, 12, 0}, {36, 24, 12, 0},
}

// Growth is the first of the four 12-byte substructures.
type Growth struct {
	Species     uint16
	HeldItem    uint16
	Experience  uint32
	PPBonuses   uint8
	Friendship  uint8
	_           uint16 // unused padding
}

// Attacks is the second substructure: the four known moves and their PP.
type Attacks struct {
	Moves [4]uint16
	PP    [4]uint8
}

// EvsConditions is the third substructure: effort values and contest stats.
type EvsConditions struct {
	EVs      [6]uint8 // HP, Atk, Def, Spd, SpAtk, SpDef
	Contest  [6]uint8 // Cool, Beauty, Cute, Smart, Tough, Feel
}

// Miscellaneous is the fourth substructure: origin, IVs/ability/egg bits,
// ribbons.
type Miscellaneous struct {
	Pokerus       uint8
	MetLocation   uint8
	OriginInfo    uint16
	IVEggAbility  uint32
	RibbonsObtain uint32
}

// Creature is the decoded form of an 80- or 100-byte creature record.
type Creature struct {
	Personality    uint32
	OriginalID     uint32 // public | secret<<16
	NicknameRaw    [10]byte
	OriginLanguage uint8
	EggData        uint8
	OTName         [7]byte
	Markings       uint8
	Checksum       uint16

	Growth        Growth
	Attacks       Attacks
	EvsConditions EvsConditions
	Misc          Miscellaneous

	// PartyStats holds the 20 trailing bytes present only in party-form
	// records (SizeParty). Empty for box-form records.
	PartyStats []byte

	// ChecksumMismatch records whether the stored header checksum failed to
	// match the computed value at decode time. Decode still returns the
	// creature on mismatch — the game itself tolerates stale checksums on
	// read.
	ChecksumMismatch bool

	size int
}

// Species returns the decoded creature's species id.
func (c *Creature) Species() uint16 { return c.Growth.Species }

// Nickname decodes the creature's nickname to UTF-8.
func (c *Creature) Nickname() string { return DecodeText(c.NicknameRaw[:]) }

// IsEmpty reports whether the creature is the game's "no Pokémon" sentinel:
// zero personality and zero original trainer id.
func (c *Creature) IsEmpty() bool { return c.Personality == 0 && c.OriginalID == 0 }

// DecodeCreature parses an 80- or 100-byte creature blob.
func DecodeCreature(blob []byte) (*Creature, error) {
	size := len(blob)
	if size != SizeBox && size != SizeParty {
		return nil, codeerr.New(codeerr.KindMalformedCreature, "invalid creature blob size")
	}

	c := &Creature{size: size}
	c.Personality = binary.LittleEndian.Uint32(blob[0x00:])
	c.OriginalID = binary.LittleEndian.Uint32(blob[0x04:])
	copy(c.NicknameRaw[:], blob[0x08:0x12])
	c.OriginLanguage = blob[0x12]
	c.EggData = blob[0x13]
	copy(c.OTName[:], blob[0x14:0x1B])
	c.Markings = blob[0x1B]
	c.Checksum = binary.LittleEndian.Uint16(blob[0x1C:])

	if c.OriginLanguage != 0 && !validLanguage(c.OriginLanguage) {
		return nil, codeerr.New(codeerr.KindMalformedCreature, "invalid origin language byte")
	}

	decrypted := make([]byte, dataSize)
	copy(decrypted, blob[dataStart:dataEnd])
	key := c.Personality ^ c.OriginalID
	xorStream(decrypted, key)

	row := permTable[c.Personality%24]
	growthBuf := subAt(decrypted, row[0])
	attacksBuf := subAt(decrypted, row[1])
	evsBuf := subAt(decrypted, row[2])
	miscBuf := subAt(decrypted, row[3])

	parseGrowth(&c.Growth, growthBuf)
	parseAttacks(&c.Attacks, attacksBuf)
	parseEvsConditions(&c.EvsConditions, evsBuf)
	parseMisc(&c.Misc, miscBuf)

	computed := checksum16(decrypted)
	c.ChecksumMismatch = computed != c.Checksum
	if c.ChecksumMismatch {
		rlog.Warn("creature checksum mismatch",
			rlog.F("personality", c.Personality), rlog.F("stored", c.Checksum), rlog.F("computed", computed))
	}

	if size == SizeParty {
		c.PartyStats = append([]byte(nil), blob[SizeBox:SizeParty]...)
	}

	return c, nil
}

// Encode serializes the creature back to its original size, recomputing the
// header checksum over the decrypted data region. Encoding is bit-identical
// for any creature produced by DecodeCreature.
func (c *Creature) Encode() []byte {
	size := c.size
	if size == 0 {
		size = SizeBox
		if len(c.PartyStats) == SizeParty-SizeBox {
			size = SizeParty
		}
	}
	blob := make([]byte, size)
	binary.LittleEndian.PutUint32(blob[0x00:], c.Personality)
	binary.LittleEndian.PutUint32(blob[0x04:], c.OriginalID)
	copy(blob[0x08:0x12], c.NicknameRaw[:])
	blob[0x12] = c.OriginLanguage
	blob[0x13] = c.EggData
	copy(blob[0x14:0x1B], c.OTName[:])
	blob[0x1B] = c.Markings

	decrypted := make([]byte, dataSize)
	growthBuf := make([]byte, subSize)
	attacksBuf := make([]byte, subSize)
	evsBuf := make([]byte, subSize)
	miscBuf := make([]byte, subSize)
	encodeGrowth(&c.Growth, growthBuf)
	encodeAttacks(&c.Attacks, attacksBuf)
	encodeEvsConditions(&c.EvsConditions, evsBuf)
	encodeMisc(&c.Misc, miscBuf)

	row := permTable[c.Personality%24]
	copy(decrypted[row[0]:row[0]+subSize], growthBuf)
	copy(decrypted[row[1]:row[1]+subSize], attacksBuf)
	copy(decrypted[row[2]:row[2]+subSize], evsBuf)
	copy(decrypted[row[3]:row[3]+subSize], miscBuf)

	checksum := checksum16(decrypted)
	binary.LittleEndian.PutUint16(blob[0x1C:], checksum)

	key := c.Personality ^ c.OriginalID
	xorStream(decrypted, key)
	copy(blob[dataStart:dataEnd], decrypted)

	if size == SizeParty && len(c.PartyStats) == SizeParty-SizeBox {
		copy(blob[SizeBox:SizeParty], c.PartyStats)
	}
	return blob
}

func subAt(decrypted []byte, offset int) []byte {
	return decrypted[offset : offset+subSize]
}

func xorStream(data []byte, key uint32) {
	var keyBytes [4]byte
	binary.LittleEndian.PutUint32(keyBytes[:], key)
	for i := range data {
		data[i] ^= keyBytes[i%4]
	}
}

// checksum16 sums the 24 little-endian u16 words of a 48-byte region,
// wrapping mod 2^16.
func checksum16(data []byte) uint16 {
	var sum uint16
	for i := 0; i < len(data); i += 2 {
		sum += binary.LittleEndian.Uint16(data[i:])
	}
	return sum
}

func validLanguage(b uint8) bool {
	switch b {
	case 1, 2, 3, 4, 5, 7:
		return true
	default:
		return false
	}
}

func parseGrowth(g *Growth, b []byte) {
	g.Species = binary.LittleEndian.Uint16(b[0:])
	g.HeldItem = binary.LittleEndian.Uint16(b[2:])
	g.Experience = binary.LittleEndian.Uint32(b[4:])
	g.PPBonuses = b[8]
	g.Friendship = b[9]
}

func encodeGrowth(g *Growth, b []byte) {
	binary.LittleEndian.PutUint16(b[0:], g.Species)
	binary.LittleEndian.PutUint16(b[2:], g.HeldItem)
	binary.LittleEndian.PutUint32(b[4:], g.Experience)
	b[8] = g.PPBonuses
	b[9] = g.Friendship
}

func parseAttacks(a *Attacks, b []byte) {
	for i := 0; i < 4; i++ {
		a.Moves[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	copy(a.PP[:], b[8:12])
}

func encodeAttacks(a *Attacks, b []byte) {
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint16(b[i*2:], a.Moves[i])
	}
	copy(b[8:12], a.PP[:])
}

func parseEvsConditions(e *EvsConditions, b []byte) {
	copy(e.EVs[:], b[0:6])
	copy(e.Contest[:], b[6:12])
}

func encodeEvsConditions(e *EvsConditions, b []byte) {
	copy(b[0:6], e.EVs[:])
	copy(b[6:12], e.Contest[:])
}

func parseMisc(m *Miscellaneous, b []byte) {
	m.Pokerus = b[0]
	m.MetLocation = b[1]
	m.OriginInfo = binary.LittleEndian.Uint16(b[2:])
	m.IVEggAbility = binary.LittleEndian.Uint32(b[4:])
	m.RibbonsObtain = binary.LittleEndian.Uint32(b[8:])
}

func encodeMisc(m *Miscellaneous, b []byte) {
	b[0] = m.Pokerus
	b[1] = m.MetLocation
	binary.LittleEndian.PutUint16(b[2:], m.OriginInfo)
	binary.LittleEndian.PutUint32(b[4:], m.IVEggAbility)
	binary.LittleEndian.PutUint32(b[8:], m.RibbonsObtain)
}
