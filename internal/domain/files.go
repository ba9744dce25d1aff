package domain

import "time"

// StoredFile is a file living directly under the upload root, identified
// by its name.
type StoredFile struct {
	Name        string
	Size        uint64
	ContentType string
	ModTime     time.Time
}
