// internals/features/recordings/dto/recording_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	corpus "tilawahku_backend/internals/features/quran/corpus"
	model "tilawahku_backend/internals/features/recordings/model"
)

/* ===================== REQUESTS ===================== */

// Create: dikirim multipart (file audio di part "audio"/"file", field lain
// form biasa). Identitas perekam dari token bila ada — field form hanya
// dipakai untuk kontributor anonim (scope global).
type CreateRecordingRequest struct {
	VerseIndex     *int   `form:"verse_index" validate:"required,min=0"`
	VerseText      string `form:"verse_text" validate:"omitempty"`
	RecorderName   string `form:"recorder_name" validate:"omitempty,min=3,max=100"`
	RecorderGender string `form:"recorder_gender" validate:"omitempty,oneof=male female"`
	ClientMeta     string `form:"client_meta" validate:"omitempty"` // JSON bebas dari client (user agent, durasi, mime)
}

// ToModel: mapping ke model. Identitas & teks ayat sudah diputuskan controller
// (token vs form, teks request vs teks korpus).
func (r CreateRecordingRequest) ToModel(objectKey, verseText, recorderName, recorderGender string) *model.RecordingModel {
	m := &model.RecordingModel{
		RecordingVerseIndex:     *r.VerseIndex,
		RecordingVerseText:      verseText,
		RecordingObjectKey:      objectKey,
		RecordingRecorderName:   strings.TrimSpace(recorderName),
		RecordingRecorderGender: recorderGender,
	}
	if meta := strings.TrimSpace(r.ClientMeta); meta != "" {
		m.RecordingClientMeta = datatypes.JSON([]byte(meta))
	}
	return m
}

/* ===================== QUERIES (list) ===================== */

// Paging (page/per_page/limit) dibaca helper ResolvePaging, bukan di sini.
type ListRecordingQuery struct {
	Verified *bool   `query:"verified"`
	Recorder *string `query:"recorder"`
	Surah    *int    `query:"surah"`

	Sort *string `query:"sort"` // created_at_desc / created_at_asc / verse_index_asc
}

/* ===================== RESPONSES ===================== */

type RecordingResponse struct {
	RecordingID             uuid.UUID      `json:"recording_id"`
	RecordingVerseIndex     int            `json:"recording_verse_index"`
	RecordingVerseText      string         `json:"recording_verse_text"`
	RecordingObjectKey      string         `json:"recording_object_key"`
	RecordingRecorderName   string         `json:"recording_recorder_name"`
	RecordingRecorderGender string         `json:"recording_recorder_gender"`
	RecordingIsVerified     bool           `json:"recording_is_verified"`
	RecordingClientMeta     datatypes.JSON `json:"recording_client_meta,omitempty"`
	RecordingCreatedAt      time.Time      `json:"recording_created_at"`
	RecordingUpdatedAt      time.Time      `json:"recording_updated_at"`
}

// Factory
func NewRecordingResponse(m *model.RecordingModel) *RecordingResponse {
	if m == nil {
		return nil
	}
	return &RecordingResponse{
		RecordingID:             m.RecordingID,
		RecordingVerseIndex:     m.RecordingVerseIndex,
		RecordingVerseText:      m.RecordingVerseText,
		RecordingObjectKey:      m.RecordingObjectKey,
		RecordingRecorderName:   m.RecordingRecorderName,
		RecordingRecorderGender: m.RecordingRecorderGender,
		RecordingIsVerified:     m.RecordingIsVerified,
		RecordingClientMeta:     m.RecordingClientMeta,
		RecordingCreatedAt:      m.RecordingCreatedAt,
		RecordingUpdatedAt:      m.RecordingUpdatedAt,
	}
}

// Batch mapper
func FromRecordingModels(rows []model.RecordingModel) []RecordingResponse {
	out := make([]RecordingResponse, 0, len(rows))
	for i := range rows {
		r := NewRecordingResponse(&rows[i])
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// Ayat + status rekam (endpoint verse-status)
type VerseStatusResponse struct {
	corpus.Verse
	IsRecorded bool `json:"is_recorded"`
}

func NewVerseStatusList(verses []corpus.Verse, recorded map[int]struct{}) []VerseStatusResponse {
	out := make([]VerseStatusResponse, 0, len(verses))
	for _, v := range verses {
		_, done := recorded[v.Index]
		out = append(out, VerseStatusResponse{Verse: v, IsRecorded: done})
	}
	return out
}

type VerseStatusListResponse struct {
	Verses        []VerseStatusResponse `json:"verses"`
	RecordedCount int                   `json:"recorded_count"`
	TotalCount    int                   `json:"total_count"`
}

type NextVerseResponse struct {
	Verse         *corpus.Verse `json:"verse"` // null bila semua sudah terekam
	RecordedCount int           `json:"recorded_count"`
	TotalCount    int           `json:"total_count"`
}

type BulkBatchResponse struct {
	Verses        []corpus.Verse `json:"verses"`
	CurrentSurahs []int          `json:"current_surahs"`
	GroupType     string         `json:"group_type"`
	UserRecorded  int            `json:"user_recorded"`
	TotalVerses   int            `json:"total_verses"`
}

func NewBulkBatchResponse(b corpus.BulkBatch) *BulkBatchResponse {
	return &BulkBatchResponse{
		Verses:        b.Verses,
		CurrentSurahs: b.Surahs,
		GroupType:     b.GroupType,
		UserRecorded:  b.UserRecorded,
		TotalVerses:   b.TotalVerses,
	}
}

type AudioURLResponse struct {
	RecordingVerseIndex int       `json:"recording_verse_index"`
	URL                 string    `json:"url"`
	ExpiresAt           time.Time `json:"expires_at"`
}

type ProgressResponse struct {
	RecordedCount  int `json:"recorded_count"`
	TotalCount     int `json:"total_count"`
	RemainingCount int `json:"remaining_count"`
}
