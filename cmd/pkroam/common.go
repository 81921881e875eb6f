package main

import (
	"strconv"

	"github.com/pkroam/pkroam/internal/codec"
	"github.com/pkroam/pkroam/internal/codeerr"
	"github.com/pkroam/pkroam/internal/report"
	"github.com/pkroam/pkroam/internal/save"
	"github.com/pkroam/pkroam/internal/store"
)

// findSave looks up a registered save by id.
func findSave(id int64) (store.SaveRecord, error) {
	saves, err := roamStore.ListSaves()
	if err != nil {
		return store.SaveRecord{}, err
	}
	for _, s := range saves {
		if s.ID == id {
			return s, nil
		}
	}
	return store.SaveRecord{}, codeerr.New(codeerr.KindStoreReadFailed, "no registered save with that id")
}

// rowsFromSave lists a save's party and boxes as report rows.
func rowsFromSave(sf *save.SaveFile) ([]report.Row, error) {
	var rows []report.Row

	party, err := sf.Party()
	if err != nil {
		return nil, err
	}
	for _, m := range party {
		rows = append(rows, report.Row{Box: "P", Slot: m.Slot, Species: m.Creature.Species(), Nickname: m.Creature.Nickname()})
	}

	for box := 1; box <= 14; box++ {
		members, err := sf.GetBox(box)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			rows = append(rows, report.Row{Box: strconv.Itoa(box), Slot: m.Slot, Species: m.Creature.Species(), Nickname: m.Creature.Nickname()})
		}
	}
	return rows, nil
}

// rowsFromStore lists every creature currently in the roam store as report
// rows, keyed by roam store id rather than a save slot.
func rowsFromStore() ([]report.Row, error) {
	creatures, err := roamStore.ListCreatures()
	if err != nil {
		return nil, err
	}

	var rows []report.Row
	for _, m := range creatures {
		c, err := codec.DecodeCreature(m.Data)
		if err != nil {
			return nil, err
		}
		rows = append(rows, report.Row{Box: "ROAM", Slot: int(m.ID), Species: c.Species(), Nickname: c.Nickname()})
	}
	return rows, nil
}
