package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Selaras dengan tabel recordings:
// - recording_verse_index merujuk corpus.Verse.Index (0-based, stabil)
// - recording_object_key: key objek audio di OSS (bytes audio TIDAK pernah di DB)
// - index unik kebijakan duplikat TIDAK di-tag di sini — dipasang saat migrate
//   sesuai RECORDING_SCOPE (lihat internals/databases)
// - hard delete (tanpa deleted_at): baris hilang = index unik lepas, ayat bisa
//   direkam ulang setelah delete

type RecordingModel struct {
	RecordingID             uuid.UUID      `gorm:"type:uuid;primaryKey;column:recording_id" json:"recording_id"`
	RecordingVerseIndex     int            `gorm:"not null;column:recording_verse_index" json:"recording_verse_index"`
	RecordingVerseText      string         `gorm:"type:text;not null;column:recording_verse_text" json:"recording_verse_text"`
	RecordingObjectKey      string         `gorm:"size:255;not null;column:recording_object_key" json:"recording_object_key"`
	RecordingRecorderName   string         `gorm:"size:100;not null;column:recording_recorder_name;index:idx_recordings_recorder" json:"recording_recorder_name"`
	RecordingRecorderGender string         `gorm:"type:varchar(10);not null;column:recording_recorder_gender" json:"recording_recorder_gender"`
	RecordingIsVerified     bool           `gorm:"not null;default:false;column:recording_is_verified;index:idx_recordings_is_verified" json:"recording_is_verified"`
	RecordingClientMeta     datatypes.JSON `gorm:"type:jsonb;column:recording_client_meta" json:"recording_client_meta,omitempty"`
	RecordingCreatedAt      time.Time      `gorm:"column:recording_created_at;autoCreateTime" json:"recording_created_at"`
	RecordingUpdatedAt      time.Time      `gorm:"column:recording_updated_at;autoUpdateTime" json:"recording_updated_at"`
}

func (RecordingModel) TableName() string {
	return "recordings"
}

// BeforeCreate mengisi UUID di aplikasi (bukan default DB) supaya
// konsisten antara PostgreSQL dan sqlite test DB.
func (r *RecordingModel) BeforeCreate(tx *gorm.DB) error {
	if r.RecordingID == uuid.Nil {
		r.RecordingID = uuid.New()
	}
	return nil
}
