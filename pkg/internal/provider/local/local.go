// Package local is the self-hosted content backend: the same Provider
// contract as the hosted one, served from a gorm database. Used for
// development, tests, and single-node deployments.
package local

import (
	"github.com/pemistahl/lingua-go"
	"gorm.io/gorm"

	"github.com/youbuidl/feedcore/pkg/internal/database"
)

type Backend struct {
	db          *gorm.DB
	rootContext string
	detector    lingua.LanguageDetector
}

func NewBackend(db *gorm.DB, rootContext string) (*Backend, error) {
	if err := database.RunMigration(db); err != nil {
		return nil, err
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(
			lingua.English,
			lingua.Spanish,
			lingua.French,
			lingua.German,
			lingua.Japanese,
			lingua.Chinese,
		).
		Build()

	return &Backend{
		db:          db,
		rootContext: rootContext,
		detector:    detector,
	}, nil
}
