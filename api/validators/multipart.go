package validators

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"

	"github.com/delanoso/safetyhub/internal/media"
	pkgerrors "github.com/delanoso/safetyhub/pkg/errors"
)

// multipartMemory is how much of a form is buffered before spilling to disk.
const multipartMemory = 32 << 20

// IsMultipart reports whether the request carries a multipart form.
func IsMultipart(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "multipart/form-data")
}

// ParseMultipart parses the form, capping the body at maxBytes plus a small
// allowance for the other fields.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+(1<<20))
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return pkgerrors.New(pkgerrors.CodeValidation, "upload exceeds the size limit")
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form")
	}
	return nil
}

// FormFile returns the named part, or nil when the form does not carry it.
func FormFile(r *http.Request, field string) (*media.File, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return nil, nil
	}
	file, err := readPart(r.MultipartForm.File[field][0])
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// RequireFormFile is FormFile for routes where the file is mandatory.
func RequireFormFile(r *http.Request, field string) (media.File, error) {
	file, err := FormFile(r, field)
	if err != nil {
		return media.File{}, err
	}
	if file == nil {
		return media.File{}, pkgerrors.New(pkgerrors.CodeValidation, "file is required").WithDetails(map[string]string{field: "is required"})
	}
	return *file, nil
}

// FormFiles returns every part under field; at least one is required.
func FormFiles(r *http.Request, field string) ([]media.File, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File[field]) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one file is required").WithDetails(map[string]string{field: "is required"})
	}
	out := make([]media.File, 0, len(r.MultipartForm.File[field]))
	for _, header := range r.MultipartForm.File[field] {
		file, err := readPart(header)
		if err != nil {
			return nil, err
		}
		out = append(out, file)
	}
	return out, nil
}

// FormValue returns a trimmed text field from a parsed multipart form.
func FormValue(r *http.Request, field string) string {
	if r.MultipartForm == nil {
		return ""
	}
	values := r.MultipartForm.Value[field]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

func readPart(header *multipart.FileHeader) (media.File, error) {
	f, err := header.Open()
	if err != nil {
		return media.File{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read uploaded file")
	}
	defer f.Close()
	body, err := io.ReadAll(f)
	if err != nil {
		return media.File{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read uploaded file")
	}
	return media.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// DecodeForm fills dest from the text fields of a parsed multipart form and
// validates it like DecodeJSONBody. Fields map by json tag; numeric and
// boolean targets take the raw value, everything else is passed as a string.
// Unknown fields are ignored.
func DecodeForm(r *http.Request, dest any) error {
	payload := map[string]json.RawMessage{}
	if r.MultipartForm != nil {
		kinds := fieldKinds(reflect.TypeOf(dest))
		for key, values := range r.MultipartForm.Value {
			kind, ok := kinds[key]
			if !ok || len(values) == 0 {
				continue
			}
			raw := strings.TrimSpace(values[0])
			if isScalarKind(kind) {
				if raw == "" || !json.Valid([]byte(raw)) {
					if raw == "" {
						continue
					}
					return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string{key: "is invalid"})
				}
				payload[key] = json.RawMessage(raw)
				continue
			}
			if raw == "" && kind != reflect.String {
				continue
			}
			encoded, err := json.Marshal(values[0])
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form field")
			}
			payload[key] = encoded
		}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form")
	}
	if err := json.Unmarshal(encoded, dest); err != nil {
		return decodeError(err)
	}
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

// DecodeJSONOrForm accepts either body encoding. The file part of a
// multipart request is returned when present.
func DecodeJSONOrForm(w http.ResponseWriter, r *http.Request, dest any, fileField string, maxBytes int64) (*media.File, error) {
	if !IsMultipart(r) {
		return nil, DecodeJSONBody(r, dest)
	}
	if err := ParseMultipart(w, r, maxBytes); err != nil {
		return nil, err
	}
	if err := DecodeForm(r, dest); err != nil {
		return nil, err
	}
	return FormFile(r, fileField)
}

func fieldKinds(t reflect.Type) map[string]reflect.Kind {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]reflect.Kind{}
	if t.Kind() != reflect.Struct {
		return out
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		out[name] = ft.Kind()
	}
	return out
}

func isScalarKind(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
