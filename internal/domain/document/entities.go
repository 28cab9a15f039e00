package document

import "time"

// Table: kyc_documents. Descriptor only; file bytes live in the document store.
type Document struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	AppID      string    `gorm:"column:app_id;size:32;index;not null" json:"app_id"`
	Filename   string    `gorm:"column:filename;size:255;not null" json:"filename"`
	UploadedAt time.Time `gorm:"column:uploaded_at;not null" json:"uploaded_at"`
}

func (Document) TableName() string { return "kyc_documents" }
