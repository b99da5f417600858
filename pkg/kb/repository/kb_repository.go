package repository

import "farmwise/entities"

type KBRepository interface {
	CreateDoc(*entities.KBDocument) error
	BulkInsertChunks([]entities.KBChunk) error
	AllChunks() ([]entities.KBChunk, error)
	DocsByIDs(ids []uint) (map[uint]entities.KBDocument, error)
}
