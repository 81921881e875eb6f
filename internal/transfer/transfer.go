// Package transfer implements the at-most-one-home protocol that moves a
// creature between a SaveFile and the RoamStore. A creature is never written
// into both containers: Deposit commits its removal from the save before
// inserting it into the store, and Withdraw deletes it from the store before
// writing it into the save. A reported failure of the second step triggers a
// compensating move back to the source; a crash between the two steps leaves
// the creature in neither container.
package transfer

import (
	"github.com/pkroam/pkroam/internal/codec"
	"github.com/pkroam/pkroam/internal/codeerr"
	"github.com/pkroam/pkroam/internal/rlog"
	"github.com/pkroam/pkroam/internal/save"
	"github.com/pkroam/pkroam/internal/store"
)

// Controller orchestrates Deposit/Withdraw across one SaveFile and one
// RoamStore. It holds no state of its own beyond the two collaborators.
type Controller struct {
	roamStore *store.RoamStore
}

// New constructs a Controller bound to the given RoamStore.
func New(roamStore *store.RoamStore) *Controller {
	return &Controller{roamStore: roamStore}
}

// DepositRequest names the creature's source slot and its destination box
// position inside the roam store.
type DepositRequest struct {
	Save    *save.SaveFile
	SrcBox  int
	SrcSlot int
	DestBox int
	DestPos int
}

// Deposit removes the creature at (SrcBox, SrcSlot), writes the save back to
// disk, then inserts the creature into the roam store. The save write must
// land before the store insert; a crash between them leaves the creature
// absent from the save and not yet in the store, never duplicated.
func (c *Controller) Deposit(req DepositRequest) (int64, error) {
	creature, err := req.Save.TakeSlot(req.SrcBox, req.SrcSlot)
	if err != nil {
		return 0, err
	}
	if creature == nil {
		return 0, codeerr.New(codeerr.KindSourceEmpty, "source slot is empty")
	}

	blob := creature.Encode()

	if err := req.Save.WriteInPlace(); err != nil {
		return 0, codeerr.Wrap(codeerr.KindSaveWriteFailed, err, "writing save before store deposit")
	}

	monsterID, err := c.roamStore.Deposit(store.MonsterBlob{
		OriginalTrainerID: creature.OriginalID & 0xFFFF,
		OriginalSecretID:  creature.OriginalID >> 16,
		PersonalityValue:  creature.Personality,
		DataFormat:        store.DataFormatPK3Box,
		Data:              blob,
	}, store.Location{Box: req.DestBox, Position: req.DestPos})
	if err != nil {
		// Store insert failed: restore the creature to its source slot and
		// rewrite the save on a best-effort basis.
		if _, putErr := req.Save.PutSlot(req.SrcBox, req.SrcSlot, blob, true); putErr != nil {
			rlog.Error("failed to restore creature to save after store deposit failure",
				rlog.F("error", putErr))
			return 0, codeerr.Wrap(codeerr.KindStoreWriteFailed, err, "store deposit failed and restoration also failed")
		}
		if writeErr := req.Save.WriteInPlace(); writeErr != nil {
			rlog.Error("failed to rewrite save after store deposit failure",
				rlog.F("error", writeErr))
		}
		return 0, codeerr.Wrap(codeerr.KindStoreWriteFailed, err, "store deposit failed, save restored on best-effort basis")
	}

	return monsterID, nil
}

// WithdrawRequest names the creature to pull out of the roam store and the
// save slot it should land in.
type WithdrawRequest struct {
	Save      *save.SaveFile
	MonsterID int64
	DestBox   int
	DestSlot  int
}

// Withdraw moves a creature from the roam store into (DestBox, DestSlot).
// The store row is removed before the save is written, so a crash between
// steps leaves the creature only in memory — logged loudly, since recovery
// then requires operator intervention.
func (c *Controller) Withdraw(req WithdrawRequest) (*codec.Creature, error) {
	existing, err := req.Save.GetSlot(req.DestBox, req.DestSlot)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, codeerr.New(codeerr.KindDestinationOccupied, "destination slot already holds a creature")
	}

	blob, origin, err := c.roamStore.Withdraw(req.MonsterID)
	if err != nil {
		return nil, err
	}

	ok, err := req.Save.PutSlot(req.DestBox, req.DestSlot, blob.Data, false)
	if err == nil && ok {
		if writeErr := req.Save.WriteInPlace(); writeErr == nil {
			return codec.DecodeCreature(blob.Data)
		} else {
			err = writeErr
		}
	} else if err == nil && !ok {
		err = codeerr.New(codeerr.KindDestinationOccupied, "destination slot became occupied during withdraw")
	}

	// Either PutSlot or WriteInPlace failed: the store row is already gone,
	// so the creature must go back or it is lost. Re-deposit at its
	// original location.
	if _, reErr := c.roamStore.Deposit(blob, origin); reErr != nil {
		rlog.Error("creature lost: withdraw failed and re-deposit into roam store also failed",
			rlog.F("monster_id", req.MonsterID), rlog.F("write_error", err), rlog.F("redeposit_error", reErr))
		return nil, codeerr.Wrap(codeerr.KindSaveWriteFailed, err, "withdraw failed and could not be rolled back; creature is only in memory")
	}
	return nil, codeerr.Wrap(codeerr.KindSaveWriteFailed, err, "withdraw failed, creature restored to roam store")
}
