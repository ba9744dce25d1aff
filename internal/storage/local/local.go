package local

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/ondrasimku/filedrop/internal/domain"
	"github.com/ondrasimku/filedrop/internal/storage"
)

// LocalStorage keeps every file as a direct child of a single directory.
// All file-system access goes through an os.Root so that no name, symlink
// included, can reach outside of it.
type LocalStorage struct {
	baseDir string
	root    *os.Root
	maxSize int64
}

func NewLocalStorage(baseDir string, maxSize int64) (*LocalStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open base directory: %w", err)
	}

	return &LocalStorage{
		baseDir: abs,
		root:    root,
		maxSize: maxSize,
	}, nil
}

func (s *LocalStorage) Root() string {
	return s.baseDir
}

func (s *LocalStorage) Close() error {
	return s.root.Close()
}

func (s *LocalStorage) Save(ctx context.Context, r io.Reader, originalName string) (domain.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return domain.StoredFile{}, fmt.Errorf("%w: %w", storage.ErrStorage, err)
	}

	name, _, err := storage.ResolvePath(s.baseDir, originalName)
	if err != nil {
		return domain.StoredFile{}, fmt.Errorf("%w: %w", storage.ErrStorage, err)
	}

	file, err := s.root.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return domain.StoredFile{}, fmt.Errorf("%w: failed to create file: %w", storage.ErrStorage, err)
	}

	src := r
	if s.maxSize > 0 {
		src = io.LimitReader(r, s.maxSize+1)
	}

	size, err := io.Copy(file, src)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		s.root.Remove(name)
		return domain.StoredFile{}, fmt.Errorf("%w: failed to write file: %w", storage.ErrStorage, err)
	}
	if s.maxSize > 0 && size > s.maxSize {
		s.root.Remove(name)
		return domain.StoredFile{}, fmt.Errorf("%w: file exceeds %d bytes", storage.ErrStorage, s.maxSize)
	}

	return domain.StoredFile{
		Name: name,
		Size: uint64(size),
	}, nil
}

func (s *LocalStorage) Open(ctx context.Context, name string) (io.ReadSeekCloser, domain.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.StoredFile{}, fmt.Errorf("%w: %w", storage.ErrNotFound, err)
	}

	cleaned, _, err := storage.ResolvePath(s.baseDir, name)
	if err != nil {
		return nil, domain.StoredFile{}, fmt.Errorf("%w: %w", storage.ErrNotFound, err)
	}

	file, err := s.root.Open(cleaned)
	if err != nil {
		return nil, domain.StoredFile{}, fmt.Errorf("%w: %w", storage.ErrNotFound, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, domain.StoredFile{}, fmt.Errorf("%w: %w", storage.ErrNotFound, err)
	}
	if !stat.Mode().IsRegular() {
		file.Close()
		return nil, domain.StoredFile{}, fmt.Errorf("%w: %q is not a regular file", storage.ErrNotFound, cleaned)
	}

	info := domain.StoredFile{
		Name:        cleaned,
		Size:        uint64(stat.Size()),
		ContentType: storage.GuessContentType(cleaned, file),
		ModTime:     stat.ModTime(),
	}

	return file, info, nil
}

func (s *LocalStorage) List(ctx context.Context) ([]domain.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrRead, err)
	}

	dir, err := s.root.Open(".")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrRead, err)
	}
	defer dir.Close()

	entries, err := dir.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrRead, err)
	}

	files := make([]domain.StoredFile, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", storage.ErrRead, err)
		}
		files = append(files, domain.StoredFile{
			Name:    entry.Name(),
			Size:    uint64(info.Size()),
			ModTime: info.ModTime(),
		})
	}

	slices.SortFunc(files, func(a, b domain.StoredFile) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return files, nil
}

func (s *LocalStorage) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stat, err := s.root.Stat(".")
	if err != nil {
		return fmt.Errorf("failed to stat base directory: %w", err)
	}
	if !stat.IsDir() {
		return fmt.Errorf("%s is not a directory", s.baseDir)
	}
	return nil
}
