// Package repository реализует хранилище данных на основе PostgreSQL
// для карточек участников и учётных записей сотрудников. Предоставляет
// методы чтения, создания и merge-записи платёжных полей с optimistic lock.
package repository

import (
	"context"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"database/sql"
)

// ErrMemberNotFound возвращается, когда участник с заданным ID не существует.
var ErrMemberNotFound = errors.New("member not found")

// ErrUserNotFound возвращается, когда учётная запись не существует.
var ErrUserNotFound = errors.New("user not found")

// ErrVersionConflict возвращается, когда merge-запись проиграла гонку:
// версия документа изменилась между чтением и записью.
var ErrVersionConflict = errors.New("member version conflict")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с участниками и пользователями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'members'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table members missing or query error: %w", err)
	}
	return nil
}
