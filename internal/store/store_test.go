package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkroam/pkroam/internal/store"
)

func openTemp(t *testing.T) *store.RoamStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roam.db")
	rs, err := store.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { rs.Close() })
	return rs
}

func TestOpen_CreatesSchema(t *testing.T) {
	rs := openTemp(t)

	saves, err := rs.ListSaves()
	require.NoError(t, err)
	assert.Empty(t, saves)
}

func TestRegisterSave_RoundTrip(t *testing.T) {
	rs := openTemp(t)

	id, err := rs.RegisterSave(store.SaveMeta{
		Game:          1,
		TrainerName:   "MAY",
		PublicID:      12345,
		SecretID:      6789,
		PlaytimeHours: 10,
		PlaytimeMin:   30,
		SavePath:      "/tmp/emerald.sav",
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	saves, err := rs.ListSaves()
	require.NoError(t, err)
	require.Len(t, saves, 1)
	assert.Equal(t, "MAY", saves[0].TrainerName)
	assert.True(t, saves[0].Connected)
}

func TestDisconnectSave_ClearsConnectedFlag(t *testing.T) {
	rs := openTemp(t)
	id, err := rs.RegisterSave(store.SaveMeta{Game: 1, TrainerName: "MAY", SavePath: "/tmp/a.sav"})
	require.NoError(t, err)

	require.NoError(t, rs.DisconnectSave(id))

	saves, err := rs.ListSaves()
	require.NoError(t, err)
	require.Len(t, saves, 1)
	assert.False(t, saves[0].Connected)
}

func TestForgetSave_RemovesRow(t *testing.T) {
	rs := openTemp(t)
	id, err := rs.RegisterSave(store.SaveMeta{Game: 1, TrainerName: "MAY", SavePath: "/tmp/a.sav"})
	require.NoError(t, err)

	require.NoError(t, rs.ForgetSave(id))

	saves, err := rs.ListSaves()
	require.NoError(t, err)
	assert.Empty(t, saves)
}

func TestDeposit_ThenWithdraw_RoundTrip(t *testing.T) {
	rs := openTemp(t)

	blob := store.MonsterBlob{
		OriginalTrainerID: 12345,
		OriginalSecretID:  6789,
		PersonalityValue:  0xDEADBEEF,
		DataFormat:        store.DataFormatPK3Box,
		Data:              make([]byte, 80),
	}
	loc := store.Location{Box: 1, Position: 1}

	id, err := rs.Deposit(blob, loc)
	require.NoError(t, err)
	assert.NotZero(t, id)

	creatures, err := rs.ListCreatures()
	require.NoError(t, err)
	require.Len(t, creatures, 1)
	assert.Equal(t, blob.PersonalityValue, creatures[0].PersonalityValue)

	gotBlob, gotLoc, err := rs.Withdraw(id)
	require.NoError(t, err)
	assert.Equal(t, loc, gotLoc)
	assert.Equal(t, blob.PersonalityValue, gotBlob.PersonalityValue)
	assert.Equal(t, blob.Data, gotBlob.Data)

	creatures, err = rs.ListCreatures()
	require.NoError(t, err)
	assert.Empty(t, creatures)
}

func TestDeposit_RejectsOccupiedPosition(t *testing.T) {
	rs := openTemp(t)
	blob := store.MonsterBlob{DataFormat: store.DataFormatPK3Box, Data: make([]byte, 80)}
	loc := store.Location{Box: 1, Position: 1}

	_, err := rs.Deposit(blob, loc)
	require.NoError(t, err)

	_, err = rs.Deposit(blob, loc)
	assert.Error(t, err, "depositing into an occupied box position must fail")

	creatures, err := rs.ListCreatures()
	require.NoError(t, err)
	assert.Len(t, creatures, 1, "the rejected deposit must not leave a dangling monster row")
}

func TestWithdraw_UnknownID_Fails(t *testing.T) {
	rs := openTemp(t)
	_, _, err := rs.Withdraw(999)
	assert.Error(t, err)
}
