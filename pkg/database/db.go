package database

import (
	"Vidhub/config"
	"Vidhub/models"
	"Vidhub/pkg/log"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewDB 初始化数据库连接并同步表结构
func NewDB(conf *config.Config) *gorm.DB {
	dsn := conf.MySQL.Dsn()
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.L.Fatal("failed to connect database", zap.Error(err))
	}
	if err := Migrate(db); err != nil {
		log.L.Fatal("failed to migrate database", zap.Error(err))
	}
	log.L.Info("connect database success")
	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Video{},
		&models.Comment{},
		&models.Reaction{},
		&models.Subscription{},
		&models.History{},
	)
}
