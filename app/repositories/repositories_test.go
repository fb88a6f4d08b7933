package repositories

import (
	"os"
	"testing"

	"arena/pkg/database"
	"arena/pkg/database/migrations"

	"gorm.io/driver/sqlite"
	gormlogger "gorm.io/gorm/logger"
)

// TestMain 用内存 SQLite 跑仓库层测试，表结构与生产一致
func TestMain(m *testing.M) {
	database.Connect(sqlite.Open("file::memory:?cache=shared"), gormlogger.Default.LogMode(gormlogger.Silent))

	if err := database.AutoMigrate(migrations.RegisterTables()); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}
