// Package models defines the data types exchanged with the CloudVault backend.
package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// FileRecord is the backend-reported metadata for one stored file.
// Names are unique per account. SizeKB is the current size field; Size is
// the legacy field older backend versions send instead.
type FileRecord struct {
	Name       string  `json:"name"`
	SizeKB     float64 `json:"size_kb,omitempty"`
	Size       float64 `json:"size,omitempty"`
	UploadedAt string  `json:"uploaded_at,omitempty"`
}

// EffectiveKB returns the file size in kilobytes, preferring size_kb over
// the legacy size field. A record carrying neither reports zero.
func (f FileRecord) EffectiveKB() float64 {
	if f.SizeKB != 0 {
		return f.SizeKB
	}
	return f.Size
}

// uploadedAtLayouts are the timestamp formats observed across backend
// versions. uploaded_at is display-formatted, not a strict RFC 3339 field.
var uploadedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"Jan 2, 2006",
}

// UploadTime parses the uploaded_at field. Records with a missing or
// unparseable date report the zero time, which date-ordered views treat
// as oldest.
func (f FileRecord) UploadTime() time.Time {
	if f.UploadedAt == "" {
		return time.Time{}
	}
	for _, layout := range uploadedAtLayouts {
		if t, err := time.Parse(layout, f.UploadedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// StorageSummary is the backend-reported aggregate usage for the account.
type StorageSummary struct {
	UsedMB  float64 `json:"used_mb"`
	LimitMB float64 `json:"limit_mb,omitempty"`
}

// FileListing is the response of GET /files. Newer backends return an
// object carrying the file array and a storage summary; older ones return
// a bare array with no summary. Both shapes normalize to this struct at
// the API boundary so nothing downstream has to care which one arrived.
type FileListing struct {
	Files   []FileRecord
	Storage *StorageSummary
}

// UnmarshalJSON accepts both response shapes.
func (l *FileListing) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		l.Storage = nil
		return json.Unmarshal(data, &l.Files)
	}

	var wrapped struct {
		Files   []FileRecord    `json:"files"`
		Storage *StorageSummary `json:"storage"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	l.Files = wrapped.Files
	l.Storage = wrapped.Storage
	return nil
}
