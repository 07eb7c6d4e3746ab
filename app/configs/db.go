package configs

import (
	"fmt"
	"log"
	"net"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	maxRetries = 10
	retryDelay = 5 * time.Second
)

// MySQLDSN builds the connection string for the configured MySQL server.
func MySQLDSN(env ENV) string {
	cfg := mysqldriver.NewConfig()
	cfg.User = env.DBUser
	cfg.Passwd = env.DBPassword
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(env.DBHost, env.DBPort)
	cfg.DBName = env.DBName
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

func dialector(env ENV) (gorm.Dialector, error) {
	switch env.DBDriver {
	case "mysql", "":
		return mysql.Open(MySQLDSN(env)), nil
	case "sqlite":
		return sqlite.Open(env.DBName + ".db"), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", env.DBDriver)
	}
}

func OpenConnection(env ENV) (*gorm.DB, error) {
	dial, err := dialector(env)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		log.Printf("Attempting to connect to %s database (Attempt %d/%d)", env.DBDriver, i+1, maxRetries)
		db, err := gorm.Open(dial, &gorm.Config{})
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					log.Println("✅ Database connection successful!")
					return db, nil
				}
			}
			lastErr = pingErr
			log.Printf("❌ Failed to ping database: %v. Retrying in %v...", pingErr, retryDelay)
		} else {
			lastErr = err
			log.Printf("❌ Failed to open GORM connection: %v. Retrying in %v...", err, retryDelay)
		}

		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries: %w", maxRetries, lastErr)
}
