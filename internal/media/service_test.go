package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
)

var (
	pngBody = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	pdfBody = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
)

type stubStore struct {
	uploaded  []string
	deleted   []string
	uploadErr error
	deleteErr error
}

func (s *stubStore) Upload(_ context.Context, objectName, _ string, _ []byte) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploaded = append(s.uploaded, objectName)
	return "https://storage.googleapis.com/bucket/" + objectName, nil
}

func (s *stubStore) Delete(_ context.Context, objectName string) error {
	s.deleted = append(s.deleted, objectName)
	return s.deleteErr
}

func (s *stubStore) ObjectName(url string) (string, bool) {
	const prefix = "https://storage.googleapis.com/bucket/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	return strings.TrimPrefix(url, prefix), true
}

func uintPtr(v uint) *uint { return &v }

func TestStoreWithoutBackendIsNotConfigured(t *testing.T) {
	svc := NewService(nil, 0, nil, nil)
	if svc.Configured() {
		t.Fatal("expected unconfigured service")
	}
	_, err := svc.Store(context.Background(), nil, enums.UploadFolderGeneral, File{Name: "a.pdf", Body: pdfBody}, AnyFile())
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}
}

func TestStoreBuildsObjectName(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store, 1<<20, nil, nil)

	out, err := svc.Store(context.Background(), uintPtr(7), enums.UploadFolderIncidents, File{Name: "../Site photo 1.png", Body: pngBody}, Images())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if len(store.uploaded) != 1 {
		t.Fatalf("expected one upload, got %d", len(store.uploaded))
	}
	name := store.uploaded[0]
	if !strings.HasPrefix(name, "incidents/7/") || !strings.HasSuffix(name, "-Site-photo-1.png") {
		t.Fatalf("unexpected object name %q", name)
	}
	if out.FileName != "Site-photo-1.png" || out.ContentType != "image/png" {
		t.Fatalf("unexpected stored metadata %+v", out)
	}

	if _, err := svc.Store(context.Background(), nil, enums.UploadFolderGeneral, File{Name: "x.pdf", Body: pdfBody}, AnyFile()); err != nil {
		t.Fatalf("store shared: %v", err)
	}
	if !strings.HasPrefix(store.uploaded[1], "uploads/shared/") {
		t.Fatalf("expected shared owner segment, got %q", store.uploaded[1])
	}
}

func TestStoreEnforcesContractorPolicy(t *testing.T) {
	svc := NewService(&stubStore{}, 1<<20, nil, nil)
	ctx := context.Background()

	_, err := svc.Store(ctx, uintPtr(1), enums.UploadFolderContractors, File{Name: "notes.txt", ContentType: "text/plain", Body: []byte("hello there")}, ContractorDocuments(1<<20))
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for text file, got %v", err)
	}

	_, err = svc.Store(ctx, uintPtr(1), enums.UploadFolderContractors, File{Name: "big.pdf", Body: append(pdfBody, make([]byte, 64)...)}, ContractorDocuments(32))
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected size ceiling rejection, got %v", err)
	}

	out, err := svc.Store(ctx, uintPtr(1), enums.UploadFolderContractors, File{Name: "cert.pdf", Body: pdfBody}, ContractorDocuments(1<<20))
	if err != nil {
		t.Fatalf("expected pdf accepted: %v", err)
	}
	if out.ContentType != "application/pdf" {
		t.Fatalf("expected application/pdf, got %s", out.ContentType)
	}
}

func TestStoreRejectsEmptyAndUnknownFolder(t *testing.T) {
	svc := NewService(&stubStore{}, 0, nil, nil)
	if _, err := svc.Store(context.Background(), nil, enums.UploadFolderGeneral, File{Name: "a"}, AnyFile()); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected empty body rejection, got %v", err)
	}
	if _, err := svc.Store(context.Background(), nil, enums.UploadFolder("tmp"), File{Name: "a", Body: pdfBody}, AnyFile()); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected folder rejection, got %v", err)
	}
}

func TestStoreWrapsUploadFailure(t *testing.T) {
	svc := NewService(&stubStore{uploadErr: errors.New("503 from gcs")}, 0, nil, nil)
	_, err := svc.Store(context.Background(), nil, enums.UploadFolderGeneral, File{Name: "a.pdf", Body: pdfBody}, AnyFile())
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestRemoveSkipsForeignURLsAndCombinesErrors(t *testing.T) {
	store := &stubStore{deleteErr: errors.New("denied")}
	svc := NewService(store, 0, nil, nil)

	err := svc.Remove(context.Background(),
		"https://storage.googleapis.com/bucket/library/1/a.pdf",
		"https://example.com/elsewhere.pdf",
		"https://storage.googleapis.com/bucket/library/1/b.pdf",
	)
	if len(store.deleted) != 2 {
		t.Fatalf("expected two deletes, got %v", store.deleted)
	}
	if err == nil || !strings.Contains(err.Error(), "denied") {
		t.Fatalf("expected combined error, got %v", err)
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"report.pdf":          "report.pdf",
		"  my file (1).docx ": "my-file-_1_.docx",
		`C:\\temp\\evil.exe`:  "evil.exe",
		"../../etc/passwd":    "passwd",
		"...":                 "",
	}
	for in, want := range cases {
		if got := sanitizeFileName(in); got != want {
			t.Errorf("sanitizeFileName(%q) = %q want %q", in, got, want)
		}
	}
}
