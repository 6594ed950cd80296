package workbook

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	perr "ordertrack/internal/platform/errors"
)

func open(t *testing.T, b []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, axis string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, axis)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestWidths(t *testing.T) {
	got := Widths(Table{
		Columns: []string{"ESTADO", "DIAS ABIERTA", "X"},
		Rows: [][]any{
			{"InProgress", 12345678901234, nil},
			{"Completed", nil, "ñandú"},
		},
	})
	want := []int{14, 18, 9}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("widths = %v want %v", got, want)
		}
	}
}

func TestEncode_TablesAndPivot(t *testing.T) {
	book := Book{
		Tables: []Table{
			{Name: "TODAS LAS ORDENES", Columns: []string{"ESTADO", "FECHA DE CREACION", "DIAS ABIERTA"}, Rows: [][]any{
				{"Completed", "03-04-25", 4},
				{"InProgress", "", nil},
			}},
			{Name: "BAJAS", Columns: []string{"ESTADO"}},
		},
		Pivot: &Pivot{Name: "ACTIVACIONES POR MODELO", Blocks: []Block{
			{Title: "MARZO 2025", Table: Table{Columns: []string{"OFERTA", "A", "Suma total"}, Rows: [][]any{
				{"GCP", 1, 1},
				{"Suma total", 1, 1},
			}}},
			{Title: "FEBRERO 2025", Table: Table{Columns: []string{"OFERTA", "B", "Suma total"}, Rows: [][]any{
				{"Suma total", 0, 0},
			}}},
		}},
	}
	raw, err := Bytes(book)
	if err != nil {
		t.Fatal(err)
	}
	f := open(t, raw)

	sheets := f.GetSheetList()
	if len(sheets) != 3 || sheets[0] != "TODAS LAS ORDENES" || sheets[2] != "ACTIVACIONES POR MODELO" {
		t.Fatalf("sheets = %q", sheets)
	}
	if v := cell(t, f, "TODAS LAS ORDENES", "B2"); v != "03-04-25" {
		t.Fatalf("date text = %q", v)
	}
	if typ, _ := f.GetCellType("TODAS LAS ORDENES", "B2"); typ == excelize.CellTypeNumber {
		t.Fatal("date must stay text")
	}
	if v := cell(t, f, "TODAS LAS ORDENES", "C2"); v != "4" {
		t.Fatalf("days = %q", v)
	}
	if v := cell(t, f, "TODAS LAS ORDENES", "C3"); v != "" {
		t.Fatalf("null days = %q", v)
	}
	if w, _ := f.GetColWidth("TODAS LAS ORDENES", "B"); w != 21 {
		t.Fatalf("width B = %v", w)
	}

	p := "ACTIVACIONES POR MODELO"
	if v := cell(t, f, p, "A1"); v != "MARZO 2025" {
		t.Fatalf("title = %q", v)
	}
	if v := cell(t, f, p, "A2"); v != "OFERTA" {
		t.Fatalf("header = %q", v)
	}
	if v := cell(t, f, p, "C4"); v != "1" {
		t.Fatalf("margin = %q", v)
	}
	// second title: 1 + 2 body rows + 4
	if v := cell(t, f, p, "A7"); v != "FEBRERO 2025" {
		t.Fatalf("second title = %q", v)
	}
	if w, _ := f.GetColWidth(p, "A"); w != 48 {
		t.Fatalf("pivot width A = %v", w)
	}
	if w, _ := f.GetColWidth(p, "K"); w != 13 {
		t.Fatalf("pivot width K = %v", w)
	}
}

func TestEncode_Empty(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, Book{}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v", err)
	}
}
