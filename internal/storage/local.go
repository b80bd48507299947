package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileStorage — хранилище загруженных файлов и фотографий.
// Save возвращает путь, по которому файл можно прочитать через Open.
type FileStorage interface {
	Save(ctx context.Context, category string, ownerID int64, filename string, r io.Reader) (string, error)
	Open(path string) (io.ReadCloser, error)
}

// LocalStorage складывает файлы на диск: <base>/<category>/<owner_id>/<имя>
type LocalStorage struct {
	baseDir string
	logger  *zap.Logger
}

func NewLocalStorage(baseDir string, logger *zap.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{baseDir: baseDir, logger: logger}, nil
}

// Save сохраняет файл под уникальным именем (timestamp + суффикс uuid),
// чтобы повторные загрузки с одинаковым именем не перетирали друг друга
func (s *LocalStorage) Save(ctx context.Context, category string, ownerID int64, filename string, r io.Reader) (string, error) {
	dir := filepath.Join(s.baseDir, category, fmt.Sprintf("%d", ownerID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create category dir: %w", err)
	}

	ext := filepath.Ext(filename)
	name := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.NewString()[:8], ext)
	fullPath := filepath.Join(dir, name)

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		// Не оставляем на диске обрезанный файл
		os.Remove(fullPath)
		return "", fmt.Errorf("write file: %w", err)
	}

	s.logger.Info("File saved",
		zap.String("path", fullPath),
		zap.String("category", category),
		zap.Int64("owner_id", ownerID),
		zap.Int64("bytes", written))

	return fullPath, nil
}

// Open открывает ранее сохранённый файл. Путь за пределами baseDir не допускается.
func (s *LocalStorage) Open(path string) (io.ReadCloser, error) {
	cleaned := filepath.Clean(path)
	base := filepath.Clean(s.baseDir)
	if !strings.HasPrefix(cleaned, base+string(filepath.Separator)) && cleaned != base {
		return nil, fmt.Errorf("path %q is outside storage dir", path)
	}

	f, err := os.Open(cleaned)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}
