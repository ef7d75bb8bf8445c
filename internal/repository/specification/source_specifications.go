package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByNamespaceID confines index reads and writes to one namespace
type ByNamespaceID struct {
	NamespaceID uuid.UUID
}

func (s ByNamespaceID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("namespace_id = ?", s.NamespaceID)
}

// ByContentHash filters source entries by their raw-byte hash
type ByContentHash struct {
	Hash string
}

func (s ByContentHash) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("content_hash = ?", s.Hash)
}

// ByEntryID filters chunks by their owning entry
type ByEntryID struct {
	EntryID uuid.UUID
}

func (s ByEntryID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("entry_id = ?", s.EntryID)
}

// AfterPosition implements cursor pagination over the insertion-order column
type AfterPosition struct {
	Position int64
}

func (s AfterPosition) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("position > ?", s.Position)
}

// ByNamespaceName filters namespaces by their derived name
type ByNamespaceName struct {
	Name string
}

func (s ByNamespaceName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}
