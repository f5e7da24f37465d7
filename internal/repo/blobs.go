package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BlobRepository — доступ к зашифрованным файлам слотов (<slot>.enc).
type BlobRepository interface {
	// Load читает блоб слота. found=false, если слот ещё не записан.
	Load(slot string) (blob []byte, found bool, err error)

	// Save полностью перезаписывает блоб слота (атомарно).
	Save(slot string, blob []byte) error

	// List возвращает идентификаторы всех существующих слотов.
	List() ([]string, error)
}

type fileBlobRepo struct {
	dir string
}

// NewBlobRepository создаёт файловый репозиторий блобов в каталоге dir.
func NewBlobRepository(dir string) BlobRepository {
	return &fileBlobRepo{dir: dir}
}

func (r *fileBlobRepo) path(slot string) string {
	return filepath.Join(r.dir, slot+".enc")
}

func (r *fileBlobRepo) Load(slot string) ([]byte, bool, error) {
	b, err := os.ReadFile(r.path(slot))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read blob %s: %w", slot, err)
	}
	return b, true, nil
}

func (r *fileBlobRepo) Save(slot string, blob []byte) error {
	if err := writeFileAtomic(r.path(slot), blob, 0o600); err != nil {
		return fmt.Errorf("write blob %s: %w", slot, err)
	}
	return nil
}

func (r *fileBlobRepo) List() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}
	var slots []string
	for _, e := range entries {
		name := e.Name()
		if e.Type().IsRegular() && strings.HasSuffix(name, ".enc") {
			slots = append(slots, strings.TrimSuffix(name, ".enc"))
		}
	}
	return slots, nil
}
