package storage

import (
	"context"
	"errors"
	"io"

	"github.com/ondrasimku/filedrop/internal/domain"
)

var (
	// ErrInvalidName is returned when a client-supplied name cannot be
	// mapped to a direct child of the root directory.
	ErrInvalidName = errors.New("invalid file name")
	// ErrStorage wraps every failure to store an upload.
	ErrStorage = errors.New("failed to store file")
	// ErrNotFound wraps every failure to open a stored file.
	ErrNotFound = errors.New("file not found")
	// ErrRead wraps every failure to enumerate the root directory.
	ErrRead = errors.New("failed to read storage directory")
)

type Storage interface {
	Save(ctx context.Context, r io.Reader, originalName string) (domain.StoredFile, error)
	Open(ctx context.Context, name string) (io.ReadSeekCloser, domain.StoredFile, error)
	List(ctx context.Context) ([]domain.StoredFile, error)
	Ping(ctx context.Context) error
	Root() string
}
