package service

import (
	"slices"
	"sort"

	"ordertrack/internal/adapters/export/workbook"
	"ordertrack/internal/core/busdays"
	"ordertrack/internal/core/dates"
	"ordertrack/internal/core/schema"
	"ordertrack/internal/services/report/domain"
)

// deactivationColumns is the BAJAS layout, absent ones are skipped
var deactivationColumns = []string{
	schema.Status, schema.Category, schema.CreatedAt, schema.Offer, schema.Subscription,
	schema.Responsible, schema.Customer, schema.Interaction, schema.Model, schema.DaysOpen,
}

// MarginLabel names the pivot totals row and column
const MarginLabel = "Suma total"

// Book lays the report out as the six sheets; topN bounds the top sheet
func Book(r *domain.Report, topN int) workbook.Book {
	if topN <= 0 {
		topN = 20
	}
	all := allColumns(r)
	open := filter(r.Orders, func(o domain.Order) bool { return o.Status != domain.StatusCompleted })

	top := filter(open, func(o domain.Order) bool {
		return o.Status == domain.StatusInProgress && o.Category != domain.CategoryDeactivation
	})
	sortByDaysOpen(top)
	if len(top) > topN {
		top = top[:topN]
	}

	deact := filter(r.Orders, func(o domain.Order) bool {
		return o.Category == domain.CategoryDeactivation && o.Status != domain.StatusCompleted
	})
	sortByDaysOpen(deact)

	done := filter(r.Orders, func(o domain.Order) bool { return o.Status == domain.StatusCompleted })

	return workbook.Book{
		Tables: []workbook.Table{
			table(domain.SheetAll, r, all, r.Orders),
			table(domain.SheetOpen, r, all, open),
			table(domain.SheetTop, r, without(r, all, schema.ActivatedAt), top),
			table(domain.SheetDeactivations, r, pick(r, deactivationColumns), deact),
			table(domain.SheetActivated, r, all, done),
		},
		Pivot: &workbook.Pivot{Name: domain.SheetByModel, Blocks: PivotBlocks(r.Orders)},
	}
}

func filter(in []domain.Order, keep func(domain.Order) bool) []domain.Order {
	var out []domain.Order
	for _, o := range in {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}

// sortByDaysOpen is stable, largest first, nulls last
func sortByDaysOpen(xs []domain.Order) {
	slices.SortStableFunc(xs, func(a, b domain.Order) int { return busdays.CompareDesc(a.DaysOpen, b.DaysOpen) })
}

func allColumns(r *domain.Report) []int {
	out := make([]int, len(r.Columns))
	for i := range out {
		out[i] = i
	}
	return out
}

func without(r *domain.Report, idx []int, name string) []int {
	var out []int
	for _, i := range idx {
		if r.Columns[i] != name {
			out = append(out, i)
		}
	}
	return out
}

func pick(r *domain.Report, names []string) []int {
	var out []int
	for _, n := range names {
		if i := slices.Index(r.Columns, n); i >= 0 {
			out = append(out, i)
		}
	}
	return out
}

func table(name string, r *domain.Report, idx []int, orders []domain.Order) workbook.Table {
	t := workbook.Table{Name: name, Columns: make([]string, len(idx)), Rows: make([][]any, len(orders))}
	for j, i := range idx {
		t.Columns[j] = r.Columns[i]
	}
	for k, o := range orders {
		row := make([]any, len(idx))
		for j, i := range idx {
			row[j] = o.Values[i]
		}
		t.Rows[k] = row
	}
	return t
}

// PivotBlocks counts completed sales orders with a subscription per offer and
// commercial model, one block per creation month, newest month first
func PivotBlocks(orders []domain.Order) []workbook.Block {
	type month struct {
		key   string
		first dates.Date
		rows  []domain.Order
	}
	byMonth := map[string]*month{}
	for _, o := range orders {
		if o.Status != domain.StatusCompleted || o.Category != domain.CategorySalesOrder {
			continue
		}
		d, ok := o.Created.Date()
		if !ok {
			continue
		}
		k := d.MonthKey()
		m := byMonth[k]
		if m == nil {
			m = &month{key: k, first: d}
			byMonth[k] = m
		}
		m.rows = append(m.rows, o)
	}
	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	var out []workbook.Block
	for _, k := range keys {
		m := byMonth[k]
		t, ok := pivot(m.rows)
		if !ok {
			continue
		}
		out = append(out, workbook.Block{Title: dates.MonthLabel(m.first), Table: t})
	}
	return out
}

// pivot is OFERTA x MODELO COMERCIAL with margins; rows lacking either key are left out
func pivot(rows []domain.Order) (workbook.Table, bool) {
	counts := map[[2]string]int{}
	offerSet, modelSet := map[string]bool{}, map[string]bool{}
	for _, o := range rows {
		if o.Offer == "" || o.Model == "" {
			continue
		}
		offerSet[o.Offer], modelSet[o.Model] = true, true
		if o.Subscription != "" {
			counts[[2]string{o.Offer, o.Model}]++
		}
	}
	if len(offerSet) == 0 {
		return workbook.Table{}, false
	}
	offers, models := sortedKeys(offerSet), sortedKeys(modelSet)

	t := workbook.Table{Columns: append(append([]string{schema.Offer}, models...), MarginLabel)}
	colTotals := make([]int, len(models))
	grand := 0
	for _, of := range offers {
		row := make([]any, 0, len(models)+2)
		row = append(row, of)
		sum := 0
		for j, mo := range models {
			n := counts[[2]string{of, mo}]
			row = append(row, n)
			colTotals[j] += n
			sum += n
		}
		grand += sum
		t.Rows = append(t.Rows, append(row, sum))
	}
	margin := make([]any, 0, len(models)+2)
	margin = append(margin, MarginLabel)
	for _, n := range colTotals {
		margin = append(margin, n)
	}
	t.Rows = append(t.Rows, append(margin, grand))
	return t, true
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
