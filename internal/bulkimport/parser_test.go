package bulkimport

import (
	"testing"
)

func TestParse(t *testing.T) {
	content := `Item Code,Item Name,Storing UOM,Purchasing Amount,Consuming UOM,Conversion Unit
CEM001,Portland Cement,Bag,25.00,Kg,50.00

STL001,Steel Rebar 12mm,Ton,2500.00,Kg,1000.00
`

	rows := Parse(content)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.ItemCode != "CEM001" || first.ItemName != "Portland Cement" {
		t.Errorf("unexpected first row: %+v", first)
	}
	if first.StoringUOM != "Bag" || first.ConsumingUOM != "Kg" {
		t.Errorf("unexpected units: %+v", first)
	}
	if first.PurchasingAmount != 25.00 || first.ConversionUnit != 50.00 {
		t.Errorf("unexpected numbers: %+v", first)
	}

	// Line numbers count from the top of the file, header included, so the
	// first data row is line 2 and the row after the blank line is line 4.
	if first.Line != 2 {
		t.Errorf("expected first data row at line 2, got %d", first.Line)
	}
	if rows[1].Line != 4 {
		t.Errorf("expected second data row at line 4, got %d", rows[1].Line)
	}
}

func TestParseHeaderOnly(t *testing.T) {
	rows := Parse("Item Code,Item Name,Storing UOM,Purchasing Amount,Consuming UOM,Conversion Unit\n")
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestParseQuotedCommas(t *testing.T) {
	content := "header\n" +
		`CEM001,"Cement, Portland",Bag,25.00,Kg,50.00`

	rows := Parse(content)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ItemName != "Cement, Portland" {
		t.Errorf("expected quoted comma preserved, got %q", rows[0].ItemName)
	}
}

func TestParseSkipsShortLines(t *testing.T) {
	content := "header\n" +
		"CEM001,Portland Cement,Bag\n" +
		"STL001,Steel Rebar 12mm,Ton,2500.00,Kg,1000.00\n"

	rows := Parse(content)
	if len(rows) != 1 {
		t.Fatalf("expected short line to be skipped, got %d rows", len(rows))
	}
	if rows[0].ItemCode != "STL001" {
		t.Errorf("expected STL001, got %q", rows[0].ItemCode)
	}
}

func TestParseNumericDefaults(t *testing.T) {
	content := "header\n" +
		"CEM001,Portland Cement,Bag,not-a-number,Kg,also-not\n"

	rows := Parse(content)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].PurchasingAmount != 0 {
		t.Errorf("expected unparseable amount to default to 0, got %v", rows[0].PurchasingAmount)
	}
	if rows[0].ConversionUnit != 1 {
		t.Errorf("expected unparseable conversion to default to 1, got %v", rows[0].ConversionUnit)
	}
}

func TestParseTrimsFields(t *testing.T) {
	content := "header\n" +
		" CEM001 , Portland Cement ,Bag, 25.00 ,Kg, 50.00 \n"

	rows := Parse(content)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ItemCode != "CEM001" || rows[0].ItemName != "Portland Cement" {
		t.Errorf("expected trimmed fields, got %+v", rows[0])
	}
	if rows[0].PurchasingAmount != 25.00 || rows[0].ConversionUnit != 50.00 {
		t.Errorf("expected trimmed numbers to parse, got %+v", rows[0])
	}
}
