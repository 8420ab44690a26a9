package testutils

import (
	"fmt"
	"os"
	"strings"

	"github.com/jinzhu/gorm"

	// postgres dialect for gorm
	_ "github.com/jinzhu/gorm/dialects/postgres"
)

// ConnectPQ connects to a postgres database for testing purposes. It returns
// false when no test database is configured, letting callers skip.
func ConnectPQ() (*gorm.DB, bool, error) {
	host := os.Getenv("CHISBOT_TEST_PQ_HOST")
	if host == "" {
		return nil, false, nil
	}

	user := os.Getenv("CHISBOT_TEST_PQ_USER")
	if user == "" {
		user = "chisbot_test"
	}

	dbPassword := os.Getenv("CHISBOT_TEST_PQ_PASSWORD")
	sslMode := os.Getenv("CHISBOT_TEST_PQ_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	dbName := os.Getenv("CHISBOT_TEST_PQ_DB")
	if dbName == "" {
		dbName = "chisbot_test"
	}

	if !strings.Contains(dbName, "test") {
		panic("The test database name has to contain 'test', as a safety measure against running tests on production systems.")
	}

	connStr := fmt.Sprintf("host=%s user=%s dbname=%s sslmode=%s password='%s'", host, user, dbName, sslMode, dbPassword)

	conn, err := gorm.Open("postgres", connStr)
	return conn, true, err
}

// ClearTables deletes all rows from the given tables, panicking on error.
// Useful in defers for test cleanup.
func ClearTables(db *gorm.DB, tables ...string) {
	for _, v := range tables {
		err := db.Exec("DELETE FROM " + v + ";").Error
		if err != nil {
			panic(err)
		}
	}
}
