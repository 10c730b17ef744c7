package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	configs "github.com/beerappa88/University-Finance-Application/internals/configs"
	auditModel "github.com/beerappa88/University-Finance-Application/internals/features/audit/model"
	collegeModel "github.com/beerappa88/University-Finance-Application/internals/features/colleges/model"
	feeModel "github.com/beerappa88/University-Finance-Application/internals/features/finance/feestructure/model"
	financeModel "github.com/beerappa88/University-Finance-Application/internals/features/finance/records/model"
	hostelModel "github.com/beerappa88/University-Finance-Application/internals/features/hostel/model"
	authModel "github.com/beerappa88/University-Finance-Application/internals/features/users/auth/model"
	userModel "github.com/beerappa88/University-Finance-Application/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		sslmode := getenv("DB_SSLMODE", "require")
		dsn = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=collegeadmin&options=-c statement_timeout=3000",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_NAME"),
			sslmode,
		)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer (transaction pooling) compatible
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// AutoMigrate keeps the schema in sync with the domain models. Order
// matters: tenant root first, then everything that references it.
func AutoMigrate() {
	if err := DB.AutoMigrate(
		&collegeModel.College{},
		&userModel.User{},
		&userModel.Role{},
		&userModel.Permission{},
		&authModel.RefreshToken{},
		&financeModel.FinancialRecord{},
		&feeModel.FeeStructure{},
		&hostelModel.HostelRoom{},
		&hostelModel.HostelOccupancy{},
		&auditModel.AuditLog{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}
	log.Println("✅ Schema migrated.")
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
