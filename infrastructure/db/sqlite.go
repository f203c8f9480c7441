package db

import (
	"context"
	"errors"
	"time"

	"github.com/prasetyowira/qrstudio/constant"
	appLogger "github.com/prasetyowira/qrstudio/infrastructure/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// SQLiteStore implements history.Repository as a single-table key-value
// store. The history service keeps its whole entry list as one JSON array
// under one key, so writes are atomic at single-key granularity.
type SQLiteStore struct {
	db *gorm.DB
}

// KVModel is the GORM model for a stored key-value pair
type KVModel struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName pins the table to the kv_models name used by the raw SQL;
// GORM's default naming strategy would otherwise derive k_v_models.
func (KVModel) TableName() string {
	return "kv_models"
}

// GormLogger implements GORM's logger.Interface
type GormLogger struct{}

// LogMode implements the log.Interface method
func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	return l
}

// Info logs info messages
func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxInfo(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Warn logs warn messages
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxWarn(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Error logs error messages
func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	appLogger.CtxError(ctx, msg, appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Error: &appLogger.CustomError{
			Code:    constant.ErrCodeDBGeneral,
			Message: msg,
			Type:    constant.ErrTypeDB,
		},
		Data: map[string]interface{}{
			constant.DataData: data,
		},
	})
}

// Trace logs SQL operations
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil {
		appLogger.CtxError(ctx, "SQL error", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBGeneral,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataElapsed: elapsed.String(),
				constant.DataRows:    rows,
				constant.DataSQL:     sql,
			},
		})
		return
	}

	appLogger.CtxDebug(ctx, "SQL query", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataElapsed: elapsed.String(),
			constant.DataRows:    rows,
			constant.DataSQL:     sql,
		},
	})
}

// NewSQLiteStore opens (or creates) the SQLite database and migrates the
// key-value schema.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	ctx := appLogger.NewRequestContext()

	appLogger.CtxDebug(ctx, "Opening SQLite database", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	dbLogger := &GormLogger{}

	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		appLogger.CtxError(ctx, "Failed to open database", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBOpen,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataPath: dbPath,
			},
		})
		return nil, err
	}

	// Auto-migrate the schema
	if err := gdb.AutoMigrate(&KVModel{}); err != nil {
		appLogger.CtxError(ctx, "Failed to migrate database schema", appLogger.LoggerInfo{
			ContextFunction: constant.CtxDB,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBMigrate,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return nil, err
	}

	appLogger.CtxInfo(ctx, "Database initialized successfully", appLogger.LoggerInfo{
		ContextFunction: constant.CtxDB,
		Data: map[string]interface{}{
			constant.DataPath: dbPath,
		},
	})

	return &SQLiteStore{db: gdb}, nil
}

// Get retrieves the value stored under key. A missing key yields an error
// with the constant.ErrStoreKeyNotFound message.
func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var model KVModel

	appLogger.CtxDebug(ctx, "Looking up store key", appLogger.LoggerInfo{
		ContextFunction: constant.CtxStoreGet,
		Data: map[string]interface{}{
			constant.DataKey: key,
		},
	})

	rows, err := s.db.Raw(`SELECT key, value, updated_at FROM kv_models WHERE key = ? LIMIT 1`, key).Rows()
	if err != nil {
		appLogger.CtxError(ctx, "Database error while looking up key", appLogger.LoggerInfo{
			ContextFunction: constant.CtxStoreGet,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBLookup,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataKey: key,
			},
		})
		return "", err
	}
	defer rows.Close()

	if !rows.Next() {
		appLogger.CtxDebug(ctx, "Store key not found", appLogger.LoggerInfo{
			ContextFunction: constant.CtxStoreGet,
			Data: map[string]interface{}{
				constant.DataKey: key,
			},
		})
		return "", errors.New(constant.ErrStoreKeyNotFound)
	}

	if err := s.db.ScanRows(rows, &model); err != nil {
		appLogger.CtxError(ctx, "Failed to scan database rows", appLogger.LoggerInfo{
			ContextFunction: constant.CtxStoreGet,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBScanRows,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataKey: key,
			},
		})
		return "", err
	}

	if err := rows.Err(); err != nil {
		return "", err
	}

	return model.Value, nil
}

// Set stores value under key, replacing any previous value.
func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	result := s.db.Exec(
		`INSERT INTO kv_models (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now())

	if result.Error != nil {
		appLogger.CtxError(ctx, "Failed to store value", appLogger.LoggerInfo{
			ContextFunction: constant.CtxStoreSet,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBUpsert,
				Message: result.Error.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataKey:  key,
				constant.DataSize: len(value),
			},
		})
		return result.Error
	}

	appLogger.CtxDebug(ctx, "Value stored successfully", appLogger.LoggerInfo{
		ContextFunction: constant.CtxStoreSet,
		Data: map[string]interface{}{
			constant.DataKey:  key,
			constant.DataSize: len(value),
		},
	})

	return nil
}

// Delete removes the value stored under key. Deleting an absent key is not
// an error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	result := s.db.Exec(`DELETE FROM kv_models WHERE key = ?`, key)

	if result.Error != nil {
		appLogger.CtxError(ctx, "Failed to delete store key", appLogger.LoggerInfo{
			ContextFunction: constant.CtxStoreDel,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBDelete,
				Message: result.Error.Error(),
				Type:    constant.ErrTypeDB,
			},
			Data: map[string]interface{}{
				constant.DataKey: key,
			},
		})
		return result.Error
	}

	appLogger.CtxDebug(ctx, "Store key deleted", appLogger.LoggerInfo{
		ContextFunction: constant.CtxStoreDel,
		Data: map[string]interface{}{
			constant.DataKey:          key,
			constant.DataRowsAffected: result.RowsAffected,
		},
	})

	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	ctx := context.Background()
	sqlDB, err := s.db.DB()
	if err != nil {
		appLogger.CtxError(ctx, "Failed to get database connection", appLogger.LoggerInfo{
			ContextFunction: constant.CtxClose,
			Error: &appLogger.CustomError{
				Code:    constant.ErrCodeDBClose,
				Message: err.Error(),
				Type:    constant.ErrTypeDB,
			},
		})
		return err
	}

	appLogger.CtxInfo(ctx, "Closing database connection", appLogger.LoggerInfo{
		ContextFunction: constant.CtxClose,
	})

	return sqlDB.Close()
}
