/*
# Module: storage/file.go
Filesystem result repository storing one XML document per request.

## Linked Modules
- [storage/repository](./repository.go) - Repository interfaces

## Tags
storage, filesystem, xml, persistence

## Exports
FileResultRepository, NewFileResultRepository

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "storage/file.go" ;
    code:description "Filesystem result repository storing one XML document per request" ;
    code:linksTo [
        code:name "storage/repository" ;
        code:path "./repository.go" ;
        code:relationship "Repository interfaces"
    ] ;
    code:exports :FileResultRepository, :NewFileResultRepository ;
    code:tags "storage", "filesystem", "xml", "persistence" .
<!-- End LinkedDoc RDF -->
*/
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileResultRepository implements ResultRepository on a local directory,
// one <token>.xml file per request. The directory is created lazily on
// the first write so the service starts even when the data volume is
// mounted later.
type FileResultRepository struct {
	dir string
}

// NewFileResultRepository creates a file-backed result repository
func NewFileResultRepository(dir string) *FileResultRepository {
	return &FileResultRepository{dir: dir}
}

// Save writes the result document for a token
func (r *FileResultRepository) Save(token string, doc []byte) error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("failed to create results directory %s: %w", r.dir, err)
	}

	path := filepath.Join(r.dir, token+".xml")
	if err := os.WriteFile(path, doc, 0644); err != nil {
		return fmt.Errorf("failed to write result file %s: %w", path, err)
	}
	return nil
}

// Load reads the result document for a token, or ErrNotFound
func (r *FileResultRepository) Load(token string) ([]byte, error) {
	// Tokens come from URLs; never let them walk out of the directory.
	if strings.ContainsAny(token, `/\`) || token == ".." {
		return nil, ErrNotFound
	}

	path := filepath.Join(r.dir, token+".xml")
	doc, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read result file %s: %w", path, err)
	}
	return doc, nil
}
