package metrics

import "github.com/prometheus/client_golang/prometheus"

// Business counts domain events worth graphing.
type Business struct {
	signatures *prometheus.CounterVec
	votes      prometheus.Counter
	pdfs       *prometheus.CounterVec
	uploads    *prometheus.CounterVec
}

// NewBusiness registers the domain counters on the provided registerer.
func NewBusiness(reg prometheus.Registerer) *Business {
	if reg == nil {
		return &Business{}
	}
	b := &Business{
		signatures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "safetyhub_signatures_total",
			Help: "Signatures captured by kind.",
		}, []string{"kind"}),
		votes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "safetyhub_votes_total",
			Help: "Committee election votes cast.",
		}),
		pdfs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "safetyhub_pdf_renders_total",
			Help: "PDF renders by document type and outcome.",
		}, []string{"type", "outcome"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "safetyhub_uploads_total",
			Help: "Files stored in object storage by folder.",
		}, []string{"folder"}),
	}
	reg.MustRegister(b.signatures, b.votes, b.pdfs, b.uploads)
	return b
}

func (b *Business) SignatureCaptured(kind string) {
	if b == nil || b.signatures == nil {
		return
	}
	b.signatures.WithLabelValues(normalizeLabel(kind)).Inc()
}

func (b *Business) VoteCast() {
	if b == nil || b.votes == nil {
		return
	}
	b.votes.Inc()
}

func (b *Business) PDFRendered(docType string, err error) {
	if b == nil || b.pdfs == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	b.pdfs.WithLabelValues(normalizeLabel(docType), outcome).Inc()
}

func (b *Business) FileUploaded(folder string) {
	if b == nil || b.uploads == nil {
		return
	}
	b.uploads.WithLabelValues(normalizeLabel(folder)).Inc()
}
