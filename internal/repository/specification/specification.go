package specification

import "gorm.io/gorm"

// Specification narrows, orders or locks a repository query. The gorm
// repositories call Apply; the memory store switches on the concrete type,
// so a new specification needs a case in memory/query.go as well.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
