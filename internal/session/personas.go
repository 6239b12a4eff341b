package session

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/agent-ops/sandboxctl/internal/secrets"
)

// LoadPersonaFiles reads every regular file under dir into a persona
// payload, mapping its path relative to dir onto targetBase inside the
// sandbox. File reads go through securejoin so symlinks inside dir cannot
// pull in content from outside it.
func LoadPersonaFiles(dir, targetBase string) ([]secrets.PersonaFile, error) {
	var personas []secrets.PersonaFile

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}

		safe, err := securejoin.SecureJoin(dir, rel)
		if err != nil {
			return fmt.Errorf("unsafe persona path %s: %w", rel, err)
		}
		content, err := os.ReadFile(safe)
		if err != nil {
			return fmt.Errorf("failed to read persona file %s: %w", rel, err)
		}

		personas = append(personas, secrets.PersonaFile{
			Path:    path.Join(targetBase, filepath.ToSlash(rel)),
			Content: string(content),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return personas, nil
}
