package publish

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type upload struct {
	LocalPath   string
	Key         string
	ContentType string
}

// fakeStore records the calls a Publisher makes. Each operation can be made to
// fail through its hook.
type fakeStore struct {
	objects []string

	calls   []string
	deleted []string
	uploads []upload
	hosted  []string

	listErr      error
	deleteHook   func(key string) error
	uploadHook   func(key string) error
	configureErr error
}

func (s *fakeStore) ListObjects(_ context.Context, prefix string) ([]string, error) {
	s.calls = append(s.calls, "list:"+prefix)
	if s.listErr != nil {
		return nil, s.listErr
	}

	return append([]string{}, s.objects...), nil
}

func (s *fakeStore) DeleteObject(_ context.Context, key string) error {
	s.calls = append(s.calls, "delete:"+key)
	if s.deleteHook != nil {
		if err := s.deleteHook(key); err != nil {
			return err
		}
	}

	s.deleted = append(s.deleted, key)

	return nil
}

func (s *fakeStore) UploadFile(_ context.Context, localPath string, key string, contentType string) error {
	s.calls = append(s.calls, "upload:"+key)
	if s.uploadHook != nil {
		if err := s.uploadHook(key); err != nil {
			return err
		}
	}

	s.uploads = append(s.uploads, upload{LocalPath: localPath, Key: key, ContentType: contentType})

	return nil
}

func (s *fakeStore) ConfigureWebsiteHosting(_ context.Context, prefix string) error {
	s.calls = append(s.calls, "configure:"+prefix)
	if s.configureErr != nil {
		return s.configureErr
	}

	s.hosted = append(s.hosted, prefix)

	return nil
}

// writeTree creates the given files (relative slash paths) under a new temp dir.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}

	return root
}
