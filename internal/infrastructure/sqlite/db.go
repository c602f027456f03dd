// Package sqlite implementa los repositorios sobre gorm + SQLite. Se usa en modo local
// (DB_DRIVER=sqlite) y como almacén de los tests de casos de uso y handlers.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// driverName es go-sqlite3 con la función unicode_lower registrada en cada conexión.
// LOWER() de SQLite solo pliega ASCII; las búsquedas usan unicode_lower.
const driverName = "sqlite3_backoffice"

var registerOnce sync.Once

func registerDriver() {
	registerOnce.Do(func() {
		sql.Register(driverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("unicode_lower", strings.ToLower, true)
			},
		})
	})
}

// Open abre (o crea) la base SQLite en path y migra el esquema.
// SQLite admite un solo escritor: el pool se limita a una conexión, por lo que dentro de
// TxRunner.Run solo deben usarse los repositorios de la transacción.
func Open(path string) (*gorm.DB, error) {
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&_foreign_keys=on"
	} else {
		dsn += "?_foreign_keys=on"
	}
	registerDriver()
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: driverName, DSN: dsn}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite: obtener sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(allModels()...); err != nil {
		return nil, fmt.Errorf("sqlite: migrar esquema: %w", err)
	}
	return db, nil
}

// Close cierra la conexión subyacente.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewRepositorySet construye todos los repositorios sobre db (conexión o transacción).
func NewRepositorySet(db *gorm.DB) repository.Set {
	return repository.Set{
		Customers:    NewCustomerRepository(db),
		Projects:     NewProjectRepository(db),
		Tasks:        NewTaskRepository(db),
		Appointments: NewAppointmentRepository(db),
		Folders:      NewFolderRepository(db),
		Documents:    NewDocumentRepository(db),
	}
}

// mapError traduce las violaciones UNIQUE de klanten a los conflictos de dominio.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		switch {
		case strings.Contains(msg, "klanten.email"):
			return domain.ErrEmailInUse
		case strings.Contains(msg, "klanten.klantnummer"):
			return domain.ErrCustomerNumberInUse
		case strings.Contains(msg, "documentmappen.naam"):
			return domain.ErrFolderNameInUse
		}
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	}
	return err
}

// likePattern escapa los comodines de LIKE y envuelve term en %...%, en minúsculas
// con el mismo plegado que unicode_lower.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}
