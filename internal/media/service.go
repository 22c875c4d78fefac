package media

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/delanoso/safetyhub/pkg/enums"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
	"github.com/delanoso/safetyhub/pkg/logger"
	"github.com/delanoso/safetyhub/pkg/metrics"
)

// ObjectStore is the subset of the GCS client the upload bridge needs.
type ObjectStore interface {
	Upload(ctx context.Context, objectName, contentType string, body []byte) (string, error)
	Delete(ctx context.Context, objectName string) error
	ObjectName(publicURL string) (string, bool)
}

// File is a buffered multipart part.
type File struct {
	Name        string
	ContentType string
	Body        []byte
}

// Stored describes an object after upload.
type Stored struct {
	URL         string `json:"url"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

// Service stores files under {folder}/{companyId|shared}/{uuid}-{name}.
type Service interface {
	Configured() bool
	Store(ctx context.Context, companyID *uint, folder enums.UploadFolder, file File, policy Policy) (*Stored, error)
	// Remove deletes previously stored objects by public URL. URLs that do not
	// point into the bucket are skipped.
	Remove(ctx context.Context, urls ...string) error
}

type service struct {
	store    ObjectStore
	maxBytes int64
	metrics  *metrics.Business
	logg     *logger.Logger
}

// NewService builds the upload bridge. A nil store leaves uploads unconfigured.
func NewService(store ObjectStore, maxBytes int64, m *metrics.Business, logg *logger.Logger) Service {
	return &service{store: store, maxBytes: maxBytes, metrics: m, logg: logg}
}

func (s *service) Configured() bool { return s.store != nil }

func (s *service) Store(ctx context.Context, companyID *uint, folder enums.UploadFolder, file File, policy Policy) (*Stored, error) {
	if s.store == nil {
		return nil, pkgerrors.NotConfigured("File storage", "set SAFETYHUB_GCS_BUCKET_NAME and GCP credentials to enable uploads")
	}
	if !folder.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid upload folder")
	}
	if len(file.Body) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is required")
	}

	limit := s.maxBytes
	if policy.MaxBytes > 0 && (limit <= 0 || policy.MaxBytes < limit) {
		limit = policy.MaxBytes
	}
	if limit > 0 && int64(len(file.Body)) > limit {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file exceeds the "+formatBytes(limit)+" limit").
			WithDetails(map[string]any{"maxBytes": limit, "sizeBytes": len(file.Body)})
	}

	contentType, ok := policy.detect(strings.TrimSpace(file.ContentType), file.Body)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file type not allowed; upload "+policy.description()).
			WithDetails(map[string]any{"contentType": contentType})
	}

	name := sanitizeFileName(file.Name)
	if name == "" {
		name = "file"
	}
	objectName := ObjectName(folder, companyID, uuid.NewString(), name)

	url, err := s.store.Upload(ctx, objectName, contentType, file.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload file")
	}
	s.metrics.FileUploaded(string(folder))

	return &Stored{
		URL:         url,
		FileName:    name,
		ContentType: contentType,
		SizeBytes:   int64(len(file.Body)),
	}, nil
}

func (s *service) Remove(ctx context.Context, urls ...string) error {
	if s.store == nil {
		return nil
	}
	var errs error
	for _, u := range urls {
		name, ok := s.store.ObjectName(u)
		if !ok {
			continue
		}
		errs = multierr.Append(errs, s.store.Delete(ctx, name))
	}
	if errs != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", errs.Error()), "stored objects left behind after delete")
	}
	return errs
}

// ObjectName builds the object key for a stored file.
func ObjectName(folder enums.UploadFolder, companyID *uint, id, fileName string) string {
	owner := "shared"
	if companyID != nil {
		owner = strconv.FormatUint(uint64(*companyID), 10)
	}
	return fmt.Sprintf("%s/%s/%s-%s", folder, owner, id, fileName)
}

func sanitizeFileName(name string) string {
	clean := path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if clean == "." || clean == "/" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(clean))
	for _, r := range clean {
		switch {
		case unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune('-')
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "-_.")
}

func formatBytes(n int64) string {
	const mb = 1024 * 1024
	if n >= mb && n%mb == 0 {
		return strconv.FormatInt(n/mb, 10) + " MB"
	}
	return strconv.FormatInt(n, 10) + " bytes"
}
