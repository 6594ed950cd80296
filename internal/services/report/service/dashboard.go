package service

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	"ordertrack/internal/core/busdays"
	"ordertrack/internal/core/dates"
	perr "ordertrack/internal/platform/errors"
	"ordertrack/internal/services/report/domain"
)

// cloud offers must carry this marker plus a provider name
const iaasMarker = "INFRAESTRUCTURA COMO SERVICIO"

// Cloud tags, checked in this order
var cloudTags = []struct{ match, tag string }{
	{"GCP", "GCP"},
	{"HUAWEI", "Huawei"},
	{"AZURE", "Azure"},
}

// OtherBucket catches offers no rule matches; it is never charted
const OtherBucket = "Otra"

// DeactivationBuckets are the charted offer buckets in display order
var DeactivationBuckets = []string{
	"Virtual CPU", "IPLAN Cloud Premium", "IPLAN Cloud", "Virtual Datacenter", "GCP", "AZURE", "HUAWEI",
}

// bucketRules run top to bottom, the premium rule must precede the plain one
var bucketRules = []struct{ match, bucket string }{
	{"VIRTUAL CPU", "Virtual CPU"},
	{"IPLAN CLOUD PREMIUM", "IPLAN Cloud Premium"},
	{"IPLAN CLOUD", "IPLAN Cloud"},
	{"VIRTUAL DATACENTER", "Virtual Datacenter"},
	{"GCP", "GCP"},
	{"AZURE", "AZURE"},
	{"HUAWEI", "HUAWEI"},
}

// Dashboard answers the interactive views from the latest report
type Dashboard struct {
	latest domain.LatestPort
}

// NewDashboard reads through latest
func NewDashboard(latest domain.LatestPort) *Dashboard {
	return &Dashboard{latest: latest}
}

var _ domain.DashboardPort = (*Dashboard)(nil)

func (d *Dashboard) report() (*domain.Report, error) {
	r, ok := d.latest.Latest()
	if !ok {
		return nil, perr.NotFoundf("no report loaded")
	}
	return r, nil
}

// KPIs counts all, completed and in progress orders
func (d *Dashboard) KPIs(_ context.Context) (domain.KPIs, error) {
	r, err := d.report()
	if err != nil {
		return domain.KPIs{}, err
	}
	k := domain.KPIs{Total: len(r.Orders)}
	for _, o := range r.Orders {
		switch o.Status {
		case domain.StatusCompleted:
			k.Completed++
		case domain.StatusInProgress:
			k.InProgress++
		}
	}
	return k, nil
}

// Orders lists the grid rows for status all, completed or inprogress
func (d *Dashboard) Orders(_ context.Context, status string) ([]domain.OrderView, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case "", domain.FilterAll, domain.FilterCompleted, domain.FilterInProgress:
	default:
		return nil, perr.WithField(perr.InvalidArgf("status must be one of all, completed, inprogress"), "status")
	}
	r, err := d.report()
	if err != nil {
		return nil, err
	}
	out := make([]domain.OrderView, 0, len(r.Orders))
	for _, o := range r.Orders {
		if status == "" || status == domain.FilterAll || o.Status == status {
			out = append(out, view(o, o.DaysOpen))
		}
	}
	return out, nil
}

// Clouds charts completed sales orders of third party cloud offers per month
// the detail is limited to month when given, as YYYY-MM
func (d *Dashboard) Clouds(_ context.Context, month string) (domain.CloudsView, error) {
	month = strings.TrimSpace(month)
	if month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			return domain.CloudsView{}, perr.WithField(perr.InvalidArgf("month must look like YYYY-MM"), "month")
		}
	}
	r, err := d.report()
	if err != nil {
		return domain.CloudsView{}, err
	}

	counts := map[[2]string]int{}
	v := domain.CloudsView{Series: []domain.CloudCount{}, Detail: []domain.CloudRow{}}
	for _, o := range r.Orders {
		if o.Status != domain.StatusCompleted || o.Category != domain.CategorySalesOrder || !isCloudOffer(o.Offer) {
			continue
		}
		tag := CloudTag(o.Offer)
		created, ok := o.Created.Date()
		if ok {
			counts[[2]string{created.MonthKey(), tag}]++
		}
		if month != "" && (!ok || created.MonthKey() != month) {
			continue
		}
		v.Detail = append(v.Detail, domain.CloudRow{Cloud: tag, OrderView: view(o, sinceCreated(o, r.Today))})
	}

	months := map[string]bool{}
	for k, n := range counts {
		months[k[0]] = true
		v.Series = append(v.Series, domain.CloudCount{Month: k[0], Cloud: k[1], Count: n})
	}
	sort.Slice(v.Series, func(i, j int) bool {
		a, b := v.Series[i], v.Series[j]
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.Cloud < b.Cloud
	})
	v.Months = sortedKeys(months)
	return v, nil
}

func isCloudOffer(offer string) bool {
	u := strings.ToUpper(offer)
	if !strings.Contains(u, iaasMarker) {
		return false
	}
	for _, c := range cloudTags {
		if strings.Contains(u, c.match) {
			return true
		}
	}
	return false
}

// CloudTag names the provider in an offer, OtherBucket when none matches
func CloudTag(offer string) string {
	u := strings.ToUpper(offer)
	for _, c := range cloudTags {
		if strings.Contains(u, c.match) {
			return c.tag
		}
	}
	return OtherBucket
}

// Bucket groups a deactivated offer
func Bucket(offer string) string {
	u := strings.ToUpper(offer)
	for _, b := range bucketRules {
		if strings.Contains(u, b.match) {
			return b.bucket
		}
	}
	return OtherBucket
}

// Deactivations charts deactivation orders by offer bucket
// buckets narrows chart and detail, empty means every charted bucket
func (d *Dashboard) Deactivations(_ context.Context, buckets []string) (domain.DeactivationsView, error) {
	selected := map[string]bool{}
	for _, b := range buckets {
		if b = strings.TrimSpace(b); b == "" {
			continue
		}
		if !slices.Contains(DeactivationBuckets, b) {
			return domain.DeactivationsView{}, perr.WithField(perr.InvalidArgf("unknown bucket %q", b), "bucket")
		}
		selected[b] = true
	}
	if len(selected) == 0 {
		for _, b := range DeactivationBuckets {
			selected[b] = true
		}
	}
	r, err := d.report()
	if err != nil {
		return domain.DeactivationsView{}, err
	}

	v := domain.DeactivationsView{Series: []domain.BucketCount{}, Detail: []domain.DeactivationRow{}}
	counts := map[string]int{}
	total := 0
	for _, o := range r.Orders {
		if o.Category != domain.CategoryDeactivation {
			continue
		}
		b := Bucket(o.Offer)
		if !selected[b] {
			continue
		}
		counts[b]++
		total++
		v.Detail = append(v.Detail, domain.DeactivationRow{Bucket: b, OrderView: view(o, sinceCreated(o, r.Today))})
	}
	for _, b := range DeactivationBuckets {
		n := counts[b]
		if n == 0 {
			continue
		}
		v.Series = append(v.Series, domain.BucketCount{Bucket: b, Count: n, Percent: float64(n) * 100 / float64(total)})
	}
	return v, nil
}

// sinceCreated counts business days from creation to today
func sinceCreated(o domain.Order, today dates.Date) busdays.Days {
	return busdays.Since(o.Created, dates.Unresolvable, today)
}

func view(o domain.Order, days busdays.Days) domain.OrderView {
	return domain.OrderView{
		Status:       o.Status,
		Category:     o.Category,
		Offer:        o.Offer,
		Model:        o.Model,
		Subscription: o.Subscription,
		Interaction:  o.Interaction,
		Customer:     o.Customer,
		Responsible:  o.Responsible,
		Created:      domain.DateView{ISO: o.Created.ISO(), Display: o.Created.Display()},
		Activated:    domain.DateView{ISO: o.Activated.ISO(), Display: o.Activated.Display()},
		DaysOpen:     days,
	}
}
