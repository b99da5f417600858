package entities

import "time"

// KBDocument is a farming reference article ingested into the knowledge base.
type KBDocument struct {
	DocID     uint      `gorm:"primaryKey" json:"doc_id"`
	Title     string    `json:"title"`
	SourceURL string    `json:"source_url"`
	Tags      string    `json:"tags"` // comma-separated crop names / topics
	CreatedAt time.Time `json:"created_at"`
}

type KBChunk struct {
	ChunkID   uint      `gorm:"primaryKey" json:"chunk_id"`
	DocID     uint      `gorm:"index" json:"doc_id"`
	Ord       int       `json:"ord"`
	Text      string    `json:"text"`
	Embedding []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
