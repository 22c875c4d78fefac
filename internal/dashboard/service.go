package dashboard

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/delanoso/safetyhub/pkg/auth"
	"github.com/delanoso/safetyhub/pkg/logger"
	"github.com/delanoso/safetyhub/pkg/types"
)

const (
	seriesMonths = 12
	topN         = 5
	monthLayout  = "2006-01"
)

// Service builds the company dashboard.
type Service interface {
	// Summary never fails: any aggregate error is logged and an all-zero
	// summary is returned in its place.
	Summary(ctx context.Context, actor auth.Actor) Summary
}

type service struct {
	repo *Repository
	logg *logger.Logger
	now  func() time.Time
}

func NewService(r *Repository, logg *logger.Logger, now func() time.Time) (Service, error) {
	if r == nil {
		return nil, fmt.Errorf("dashboard repository required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: r, logg: logg, now: now}, nil
}

func (s *service) Summary(ctx context.Context, actor auth.Actor) Summary {
	today := types.NewDate(s.now().UTC())
	out, err := s.collect(ctx, actor, today)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "dashboard aggregation failed", err)
		}
		return emptySummary(today)
	}
	return out
}

func (s *service) collect(ctx context.Context, actor auth.Actor, today types.Date) (Summary, error) {
	var (
		out   = emptySummary(today)
		dates []types.Date
	)
	g, gctx := errgroup.WithContext(ctx)

	counters := []struct {
		dst *int64
		fn  func(context.Context) (int64, error)
	}{
		{&out.Counts.OpenIncidents, func(c context.Context) (int64, error) { return s.repo.OpenIncidents(c, actor) }},
		{&out.Counts.PendingAppointments, func(c context.Context) (int64, error) { return s.repo.PendingAppointments(c, actor) }},
		{&out.Counts.ExpiringCertificates, func(c context.Context) (int64, error) { return s.repo.ExpiringCertificates(c, actor, today) }},
		{&out.Counts.ExpiringMedicals, func(c context.Context) (int64, error) { return s.repo.ExpiringMedicals(c, actor, today) }},
		{&out.Counts.PendingPPESignatures, func(c context.Context) (int64, error) { return s.repo.PendingPPESignatures(c, actor) }},
		{&out.Counts.LowStockItems, func(c context.Context) (int64, error) { return s.repo.LowStockItems(c, actor) }},
	}
	for _, c := range counters {
		g.Go(func() error {
			n, err := c.fn(gctx)
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}

	g.Go(func() error {
		var err error
		dates, err = s.repo.IncidentDatesSince(gctx, actor, seriesStart(today))
		return err
	})
	g.Go(func() error {
		rows, err := s.repo.TopIncidentValues(gctx, actor, "type", topN)
		if err != nil {
			return err
		}
		out.TopIncidentTypes = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.TopIncidentValues(gctx, actor, "department", topN)
		if err != nil {
			return err
		}
		out.TopDepartments = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	out.IncidentsByMonth = bucketByMonth(out.IncidentsByMonth, dates)
	return out, nil
}

// seriesStart is the first day of the oldest month in the series.
func seriesStart(today types.Date) types.Date {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	return types.NewDate(first.AddDate(0, -(seriesMonths - 1), 0))
}

func emptySummary(today types.Date) Summary {
	start := seriesStart(today)
	series := make([]MonthPoint, seriesMonths)
	for i := range series {
		series[i] = MonthPoint{Month: start.Time.AddDate(0, i, 0).Format(monthLayout)}
	}
	return Summary{
		IncidentsByMonth: series,
		TopIncidentTypes: []LabelValue{},
		TopDepartments:   []LabelValue{},
	}
}

func bucketByMonth(series []MonthPoint, dates []types.Date) []MonthPoint {
	index := make(map[string]int, len(series))
	for i, p := range series {
		index[p.Month] = i
	}
	for _, d := range dates {
		if i, ok := index[d.Format(monthLayout)]; ok {
			series[i].Count++
		}
	}
	return series
}
