// Package links builds the browser-facing URLs handed out for token flows.
package links

import (
	"net/url"
	"strings"
)

// Builder joins frontend paths onto a base URL.
type Builder struct {
	base string
}

func NewBuilder(base string) Builder {
	return Builder{base: strings.TrimRight(strings.TrimSpace(base), "/")}
}

func (b Builder) join(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return b.base + "/" + strings.Join(escaped, "/")
}

// AppointmentSign is the page where a party signs an appointment.
func (b Builder) AppointmentSign(token string) string { return b.join("sign", "appointment", token) }

// PPESign is the page where a person acknowledges issued PPE.
func (b Builder) PPESign(token string) string { return b.join("sign", "ppe", token) }

// Ballot is a voter's single-use ballot page.
func (b Builder) Ballot(token string) string { return b.join("vote", token) }

// ContractorUpload is the contractor's self-service document page.
func (b Builder) ContractorUpload(token string) string { return b.join("contractor", token) }
