package service

import (
	"bytes"
	"context"
	"testing"

	"ordertrack/internal/adapters/export/workbook"
	"ordertrack/internal/adapters/ingest/tabular"
	"ordertrack/internal/platform/testkit"
	"ordertrack/internal/services/report/domain"
)

// reread renders r, reads the workbook back and builds it again as of the same day
func reread(t *testing.T, r *domain.Report) *domain.Report {
	t.Helper()
	body, err := workbook.Bytes(Book(r, 20))
	if err != nil {
		t.Fatal(err)
	}
	f, err := tabular.Read(tabular.BytesSource(FileName(r.Today), body))
	if err != nil {
		t.Fatal(err)
	}
	again, err := Build(context.Background(), f, r.Today, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	return again
}

func TestBuild_ReloadKeepsDates(t *testing.T) {
	// a year old order keeps its days open past the month-first reading
	oldOrders := testkit.Lines(
		"Order Status,Order Creation Date,Subscription,Interaction,Fecha Activación",
		"InProgress,10-01-23,R1,I1,",
		"Completed,10-01-23,R2,I2,20-01-23",
	)
	f, err := tabular.ReadCSV(bytes.NewReader(oldOrders))
	if err != nil {
		t.Fatal(err)
	}
	old, err := Build(context.Background(), f, today, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if o := bySub(t, old, "R1"); o.Created.ISO() != "2023-01-10" || o.DaysOpen.String() != "364" {
		t.Fatalf("R1 first build = %s %s", o.Created.ISO(), o.DaysOpen)
	}
	if o := bySub(t, old, "R2"); o.Activated.ISO() != "2023-01-20" || o.DaysOpen.String() != "8" {
		t.Fatalf("R2 first build = %s %s", o.Activated.ISO(), o.DaysOpen)
	}

	for name, first := range map[string]*domain.Report{"year old": old, "fixture": built(t)} {
		t.Run(name, func(t *testing.T) {
			second := reread(t, first)
			if len(second.Orders) != len(first.Orders) {
				t.Fatalf("rows %d, want %d", len(second.Orders), len(first.Orders))
			}
			for _, want := range first.Orders {
				got := bySub(t, second, want.Subscription)
				if got.Created != want.Created || got.Activated != want.Activated || got.DaysOpen != want.DaysOpen {
					t.Fatalf("%s reloaded as created=%q activated=%q days=%s, want %q %q %s",
						want.Subscription, got.Created.ISO(), got.Activated.ISO(), got.DaysOpen,
						want.Created.ISO(), want.Activated.ISO(), want.DaysOpen)
				}
			}
		})
	}
}
