package media

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type mimeGroup string

const (
	mimeGroupImages mimeGroup = "images"
	mimeGroupPDFs   mimeGroup = "PDFs"
	mimeGroupWord   mimeGroup = "Word documents"
)

var mimeGroupTypes = map[mimeGroup][]string{
	mimeGroupImages: {"image/png", "image/jpeg", "image/webp"},
	mimeGroupPDFs:   {"application/pdf"},
	mimeGroupWord: {
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	},
}

// Policy bounds what a route accepts. A zero MaxBytes falls back to the
// service-wide ceiling; no groups means any content type.
type Policy struct {
	MaxBytes int64
	groups   []mimeGroup
}

// AnyFile accepts every content type up to the service ceiling.
func AnyFile() Policy { return Policy{} }

// Images accepts png, jpeg and webp.
func Images() Policy { return Policy{groups: []mimeGroup{mimeGroupImages}} }

// ContractorDocuments accepts PDFs, images and Word files up to maxBytes.
func ContractorDocuments(maxBytes int64) Policy {
	return Policy{
		MaxBytes: maxBytes,
		groups:   []mimeGroup{mimeGroupPDFs, mimeGroupImages, mimeGroupWord},
	}
}

func (p Policy) restricted() bool { return len(p.groups) > 0 }

func (p Policy) allowedTypes() []string {
	var out []string
	for _, g := range p.groups {
		out = append(out, mimeGroupTypes[g]...)
	}
	return out
}

func (p Policy) description() string {
	names := make([]string, 0, len(p.groups))
	for _, g := range p.groups {
		names = append(names, string(g))
	}
	return humanReadableList(names)
}

// detect sniffs the body and checks it against the policy. The declared
// type only breaks ties when sniffing yields a generic container type.
func (p Policy) detect(declared string, body []byte) (string, bool) {
	sniffed := mimetype.Detect(body)
	contentType := sniffed.String()
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	if !p.restricted() {
		if contentType == "application/octet-stream" && declared != "" {
			return declared, true
		}
		return contentType, true
	}
	for _, allowed := range p.allowedTypes() {
		if sniffed.Is(allowed) {
			return allowed, true
		}
	}
	// legacy .doc files sniff as a bare OLE container
	if sniffed.Is("application/x-ole-storage") && strings.EqualFold(declared, "application/msword") {
		for _, allowed := range p.allowedTypes() {
			if allowed == "application/msword" {
				return allowed, true
			}
		}
	}
	return contentType, false
}

func humanReadableList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return fmt.Sprintf("%s or %s", items[0], items[1])
	default:
		return fmt.Sprintf("%s, or %s", strings.Join(items[:len(items)-1], ", "), items[len(items)-1])
	}
}
