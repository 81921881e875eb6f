package save

import (
	"encoding/binary"

	"github.com/pkroam/pkroam/internal/codec"
	"github.com/pkroam/pkroam/internal/codeerr"
	"github.com/pkroam/pkroam/internal/gamelayout"
)

// Gender is the trainer's reported gender.
type Gender uint8

const (
	GenderMale Gender = iota
	GenderFemale
)

// TimePlayed is the in-game played-time counter.
type TimePlayed struct {
	Hours   uint16
	Minutes uint8
	Seconds uint8
	Frames  uint8
}

// TrainerInfo is the decoded contents of logical section 0's header fields.
type TrainerInfo struct {
	PlayerName string
	Gender     Gender
	PublicID   uint16
	SecretID   uint16
	TimePlayed TimePlayed
}

// TrainerID packs the public/secret halves the way the save format does.
func (t TrainerInfo) TrainerID() uint32 {
	return uint32(t.PublicID) | uint32(t.SecretID)<<16
}

func parseTrainerInfo(sectionZero []byte) (TrainerInfo, gamelayout.Code, error) {
	name := codec.DecodeText(sectionZero[0x00:0x07])
	genderByte := sectionZero[0x08]
	var gender Gender
	switch genderByte {
	case 0x00:
		gender = GenderMale
	case 0x01:
		gender = GenderFemale
	default:
		return TrainerInfo{}, 0, codeerr.New(codeerr.KindMalformedCreature, "invalid player gender byte")
	}

	trainerID := binary.LittleEndian.Uint32(sectionZero[0x0A:])
	ti := TrainerInfo{
		PlayerName: name,
		Gender:     gender,
		PublicID:   uint16(trainerID & 0xFFFF),
		SecretID:   uint16(trainerID >> 16),
		TimePlayed: TimePlayed{
			Hours:   binary.LittleEndian.Uint16(sectionZero[0x0E:]),
			Minutes: sectionZero[0x10],
			Seconds: sectionZero[0x11],
			Frames:  sectionZero[0x12],
		},
	}

	gameCodeRaw := binary.LittleEndian.Uint32(sectionZero[0xAC:])
	return ti, gamelayout.FromGameCodeField(gameCodeRaw), nil
}
