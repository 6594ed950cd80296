package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"ordertrack/internal/adapters/ingest/tabular"
	"ordertrack/internal/core/dates"
	"ordertrack/internal/core/series"
	"ordertrack/internal/platform/testkit"
	"ordertrack/internal/services/report/domain"
)

// Monday
var today = dates.MustNew(2024, time.June, 3)

// ordersCSV uses the English export headers; S1 appears twice
var ordersCSV = testkit.Lines(
	"Order ID,Order Status,Order Creation Date,Subscription,Interaction,Order Category,Main Offer,Commercial Model,Fecha Activación,Days Open,Monto",
	"1,Completed,03-05-24,S1,I1,SalesOrder,INFRAESTRUCTURA COMO SERVICIO GCP,Mensual,10-05-24,,100",
	"2,Completed,03-05-24,S1,I1,SalesOrder,duplicate,Mensual,,,",
	"3,InProgress,28-05-24,S2,I2,SalesOrder,IPLAN CLOUD,Anual,,,",
	"4,InProgress,20-05-24,S3,I3,Deactivation,VIRTUAL CPU X,Anual,,,",
	"5,INPROGRESS,not-a-date,S4,I4,SalesOrder,Otro,Anual,,,",
	"6,InProgress,01-02-24,S5,I5,SalesOrder,Otro,Anual,,150,",
)

func frame(t *testing.T) tabular.Frame {
	t.Helper()
	f, err := tabular.ReadCSV(bytes.NewReader(ordersCSV))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func built(t *testing.T) *domain.Report {
	t.Helper()
	r, err := Build(context.Background(), frame(t), today, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func bySub(t *testing.T, r *domain.Report, sub string) domain.Order {
	t.Helper()
	for _, o := range r.Orders {
		if o.Subscription == sub {
			return o
		}
	}
	t.Fatalf("no order %s", sub)
	return domain.Order{}
}

type fixedLatest struct{ r *domain.Report }

func (f fixedLatest) Latest() (*domain.Report, bool) { return f.r, f.r != nil }

func (f fixedLatest) LatestWorkbook() (string, []byte, bool) { return "", nil, f.r != nil }

func bytesReader(b []byte) *bytes.Reader { return bytes.NewReader(b) }

func seriesOptions(workers, chunk int) series.Options {
	return series.Options{Workers: workers, ChunkSize: chunk}
}
