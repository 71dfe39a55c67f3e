package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Slot keys. The character record gates startup routing; the game slot
// holds the full simulation snapshot.
const (
	SlotCharacter = "playerData"
	SlotGame      = "gameData"
)

// SaveSlot is one string-keyed slot of the persistent store. The payload
// is opaque serialized text; the engine never queries inside it.
type SaveSlot struct {
	Key       string         `gorm:"primaryKey;size:32" json:"key"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SaveSlot) TableName() string { return "save_slots" }

// PutSlot writes (or overwrites) a slot's payload.
func PutSlot(db *gorm.DB, key string, payload []byte) error {
	slot := SaveSlot{Key: key, Value: datatypes.JSON(payload)}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
}

// GetSlot reads a slot's payload. ok is false when the key is absent.
func GetSlot(db *gorm.DB, key string) ([]byte, bool, error) {
	var slot SaveSlot
	err := db.Where("key = ?", key).First(&slot).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(slot.Value), true, nil
}
