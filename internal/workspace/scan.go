// Package workspace discovers GEDCOM files under a directory tree.
package workspace

import (
	"bufio"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"genmap/internal/gedcom"
	"genmap/util"
)

// FileInfo describes one discovered GEDCOM file. Record counts come from a
// cheap probe pass, not a full parse.
type FileInfo struct {
	Path        string `json:"path"`
	SizeBytes   int64  `json:"size_bytes"`
	Individuals int    `json:"individuals"`
	Families    int    `json:"families"`
}

// DefaultRoot returns the scan root when none is given: the enclosing git
// repository of the working directory, or the working directory itself.
func DefaultRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return util.FindRepoRoot(cwd)
}

// Scan walks root for .ged and .gedcom files. Rules from a .gitignore at the
// root apply, and hidden directories are skipped. Files that cannot be read
// are logged and left out rather than failing the scan.
func Scan(root string) ([]FileInfo, error) {
	matcher, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		// No usable ignore file; scan everything.
		matcher = nil
	}

	var files []FileInfo
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if matcher != nil && rel != "." && matcher.MatchesPath(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext != ".ged" && ext != ".gedcom" {
			return nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return infoErr
		}
		individuals, families, probeErr := probe(path)
		if probeErr != nil {
			log.Printf("[scan] skipping %s: %v", path, probeErr)
			return nil
		}
		files = append(files, FileInfo{
			Path:        path,
			SizeBytes:   info.Size(),
			Individuals: individuals,
			Families:    families,
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, walkErr)
	}
	return files, nil
}

// probe counts level-0 INDI and FAM openers without building records.
func probe(path string) (individuals, families int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		ln, lnErr := gedcom.ParseLine(raw)
		if lnErr != nil || ln.Level != 0 || ln.XRef == "" {
			continue
		}
		switch ln.Tag {
		case gedcom.TagIndividual:
			individuals++
		case gedcom.TagFamily:
			families++
		}
	}
	if scanErr := sc.Err(); scanErr != nil {
		return 0, 0, scanErr
	}
	return individuals, families, nil
}
