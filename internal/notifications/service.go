package notifications

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/db/models"
	"github.com/delanoso/safetyhub/pkg/enums"
	"github.com/delanoso/safetyhub/pkg/logger"
	"github.com/delanoso/safetyhub/pkg/types"
)

// maxNotifications caps the bell list; the registers hold the full picture.
const maxNotifications = 100

// Service lists what needs attention in the caller's company.
type Service interface {
	// List never fails; a read error is logged and yields an empty list.
	List(ctx context.Context, actor auth.Actor) []Notification
}

type service struct {
	repo *Repository
	logg *logger.Logger
	now  func() time.Time
}

func NewService(r *Repository, logg *logger.Logger, now func() time.Time) (Service, error) {
	if r == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: r, logg: logg, now: now}, nil
}

func (s *service) List(ctx context.Context, actor auth.Actor) []Notification {
	out, err := s.collect(ctx, actor)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "list notifications failed", err)
		}
		return []Notification{}
	}
	return out
}

func (s *service) collect(ctx context.Context, actor auth.Actor) ([]Notification, error) {
	today := types.NewDate(s.now().UTC())
	out := []Notification{}

	certs, err := s.repo.DueCertificates(ctx, actor, today)
	if err != nil {
		return nil, err
	}
	for _, c := range certs {
		out = append(out, expiryNotice(
			"certificate", KindCertificateExpiring, KindCertificateExpired,
			c.ID, c.EmployeeName, c.Type, c.ExpiryDate, today, fmt.Sprintf("/certificates/%d", c.ID),
		))
	}

	medicals, err := s.repo.DueMedicals(ctx, actor, today)
	if err != nil {
		return nil, err
	}
	for _, m := range medicals {
		out = append(out, expiryNotice(
			"medical", KindMedicalExpiring, KindMedicalExpired,
			m.ID, m.EmployeeName, m.Type, m.ExpiryDate, today, fmt.Sprintf("/medicals/%d", m.ID),
		))
	}

	appointments, err := s.repo.AwaitingAppointments(ctx, actor)
	if err != nil {
		return nil, err
	}
	for _, a := range appointments {
		date := a.Date
		out = append(out, Notification{
			Kind:     KindAppointmentPending,
			Severity: SeverityInfo,
			Title:    "Appointment awaiting signature",
			Message:  fmt.Sprintf("%s appointment for %s is %s", a.Type, a.Appointee, humanStatus(a.Status)),
			RecordID: a.ID,
			Link:     fmt.Sprintf("/appointments/%d", a.ID),
			Date:     &date,
		})
	}

	issues, err := s.repo.PendingPPEIssues(ctx, actor)
	if err != nil {
		return nil, err
	}
	for _, i := range issues {
		date := i.IssueDate
		out = append(out, Notification{
			Kind:     KindPPEPending,
			Severity: SeverityInfo,
			Title:    "PPE issue awaiting signature",
			Message:  fmt.Sprintf("%d x %s issued to %s has not been acknowledged", i.Quantity, itemName(i), personName(i)),
			RecordID: i.ID,
			Link:     fmt.Sprintf("/ppe/issues/%d", i.ID),
			Date:     &date,
		})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return rank(out[a].Severity) < rank(out[b].Severity)
	})
	if len(out) > maxNotifications {
		out = out[:maxNotifications]
	}
	return out, nil
}

func expiryNotice(noun string, expiring, expired Kind, id uint, who, what string, expiry, today types.Date, link string) Notification {
	date := expiry
	n := Notification{RecordID: id, Link: link, Date: &date}
	if enums.ExpiryStatusOn(expiry, today) == enums.ExpiryStatusExpired {
		n.Kind = expired
		n.Severity = SeverityCritical
		n.Title = fmt.Sprintf("%s %s expired", what, noun)
		n.Message = fmt.Sprintf("%s's %s %s expired on %s", who, what, noun, expiry)
		return n
	}
	n.Kind = expiring
	n.Severity = SeverityWarning
	n.Title = fmt.Sprintf("%s %s expiring", what, noun)
	n.Message = fmt.Sprintf("%s's %s %s expires on %s", who, what, noun, expiry)
	return n
}

func rank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

func humanStatus(s enums.AppointmentStatus) string {
	switch s {
	case enums.AppointmentStatusPendingAppointer, enums.AppointmentStatusAppointeeSigned:
		return "waiting for the appointer"
	case enums.AppointmentStatusPendingAppointee, enums.AppointmentStatusAppointerSigned:
		return "waiting for the appointee"
	default:
		return string(s)
	}
}

func itemName(i models.PPEIssue) string {
	if i.ItemType != nil {
		return i.ItemType.Name
	}
	return "item"
}

func personName(i models.PPEIssue) string {
	if i.Person != nil {
		return i.Person.Name
	}
	return "a worker"
}
