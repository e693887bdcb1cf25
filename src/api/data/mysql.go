package data

import (
	"log"

	"github.com/greenlink-tr/greenlink/src/api/types"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MustMySQL connects to the forum database and ensures the schema exists.
func MustMySQL(dsn string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := db.AutoMigrate(&types.ForumPost{}); err != nil {
		log.Fatalf("mysql migrate: %v", err)
	}
	return db
}
