package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrFileNotFound  = errors.New("file not found")
	ErrEmptyFilename = errors.New("empty filename")
)

// FileStorage интерфейс для работы с файловым хранилищем
type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader, subPath string) (filePath string, fileSize int64, err error)
	Delete(ctx context.Context, filePath string) error
	Exists(relativePath string) bool
	GetFullPath(relativePath string) string
	BaseURL() string
	GetBaseDir() string
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeFilename приводит пользовательское имя файла к безопасному ключу
// хранилища: отбрасывает каталоги, заменяет недопустимые символы и не дает
// пустого результата. Для мусорных имен возвращает сгенерированный ключ.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".")
	if name == "" || strings.Trim(name, "_") == "" {
		return uuid.New().String()
	}
	return name
}

// LocalFileStorage реализация для локальной файловой системы
type LocalFileStorage struct {
	baseDir string // Базовый каталог для хранения (например: "./uploads")
	baseURL string // Базовый URL для доступа к файлам (например: "http://localhost:8080/uploads")
}

func NewLocalFileStorage(baseDir, baseURL string) (*LocalFileStorage, error) {
	// Создаем директорию, если она не существует
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: baseDir,
		baseURL: baseURL,
	}, nil
}

// Save записывает файл под очищенным именем внутри subPath и возвращает
// относительный путь в хранилище.
func (s *LocalFileStorage) Save(ctx context.Context, file *multipart.FileHeader, subPath string) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	filename := SanitizeFilename(file.Filename)
	filePath := filepath.Join(s.baseDir, subPath, filename)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directories: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", 0, fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	// Создаем целевой файл
	dst, err := os.Create(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var size int64
	var copyErr error

	go func() {
		size, copyErr = io.Copy(dst, src)
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(filePath)
			return "", 0, fmt.Errorf("failed to copy file: %w", copyErr)
		}
	case <-ctx.Done():
		_ = os.Remove(filePath)
		return "", 0, ctx.Err()
	}

	return filepath.Join(subPath, filename), size, nil
}

// Delete удаляет файл из хранилища. Отсутствующий файл различим для
// вызывающего через ErrFileNotFound.
func (s *LocalFileStorage) Delete(ctx context.Context, filePath string) error {
	if filePath == "" {
		return ErrEmptyFilename
	}

	fullPath := filepath.Join(s.baseDir, filePath)
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", filePath, ErrFileNotFound)
		}
		return err
	}

	return nil
}

// Exists проверяет наличие файла, не открывая его
func (s *LocalFileStorage) Exists(relativePath string) bool {
	_, err := os.Stat(filepath.Join(s.baseDir, relativePath))
	return err == nil
}

// GetFullPath возвращает полный путь к файлу на диске
func (s *LocalFileStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, relativePath)
}

// BaseURL возвращает базовый URL для доступа к файлам
func (s *LocalFileStorage) BaseURL() string {
	return s.baseURL
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}
