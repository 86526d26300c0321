package database

import (
	"os"
	"path/filepath"
)

// ArtifactInfo represents metadata about a generated export artifact
type ArtifactInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	CreatedAt   int64  `json:"createdAt"`
	DownloadURL string `json:"downloadUrl"`
}

// ArtifactService lists and resolves generated artifacts under the managed
// data directory so the static gateway can serve them back.
type ArtifactService struct {
	dataDir string
}

// NewArtifactService creates a new ArtifactService instance
func NewArtifactService(dataDir string) *ArtifactService {
	return &ArtifactService{dataDir: dataDir}
}

// ListArtifacts returns metadata for every exported file in the data
// directory. A missing directory yields an empty list, not an error.
func (s *ArtifactService) ListArtifacts() ([]ArtifactInfo, error) {
	var files []ArtifactInfo

	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return files, nil
		}
		return nil, err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".pdf", ".pptx":
		default:
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, ArtifactInfo{
			ID:          entry.Name(),
			Name:        entry.Name(),
			Size:        info.Size(),
			CreatedAt:   info.ModTime().UnixMilli(),
			DownloadURL: "/static/" + entry.Name(),
		})
	}

	return files, nil
}

// HasArtifacts reports whether any export artifact exists.
func (s *ArtifactService) HasArtifacts() (bool, error) {
	files, err := s.ListArtifacts()
	if err != nil {
		return false, err
	}
	return len(files) > 0, nil
}

// ResolveArtifact returns the on-disk path for an artifact id, which is
// its bare filename. Ids carrying path separators are rejected before any
// filesystem access.
func (s *ArtifactService) ResolveArtifact(id string) (string, error) {
	if id == "" || filepath.Base(id) != id {
		return "", os.ErrNotExist
	}
	path := filepath.Join(s.dataDir, id)
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

// TouchDataDir ensures the managed data directory exists.
func (s *ArtifactService) TouchDataDir() error {
	return os.MkdirAll(s.dataDir, 0755)
}
