package utils

import (
	"testing"
	"time"
)

func TestSplitJoinList(t *testing.T) {
	got := SplitList(" Breakfast, Half Board ,,Dinner")
	if len(got) != 3 || got[1] != "Half Board" {
		t.Fatalf("SplitList: %v", got)
	}
	if joined := JoinList([]string{"A", " ", "B"}); joined != "A,B" {
		t.Fatalf("JoinList: %q", joined)
	}
	if got := SplitList(""); len(got) != 0 {
		t.Fatalf("SplitList of empty string: %v", got)
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  Hotel   Seeblick "); got != "Hotel Seeblick" {
		t.Fatalf("NormalizeSpace: %q", got)
	}
	if got := NormalizeSpace("   "); got != "" {
		t.Fatalf("NormalizeSpace of blanks: %q", got)
	}
}

func TestFormatDateTime(t *testing.T) {
	at := time.Date(2026, 9, 10, 14, 30, 5, 0, time.UTC)
	if got := FormatDateTime(at); got != "2026-09-10 14:30:05" {
		t.Fatalf("FormatDateTime: %q", got)
	}
}

func TestDepositAmount(t *testing.T) {
	if got := DepositAmount(1250.00); got != 375.00 {
		t.Fatalf("DepositAmount(1250.00) = %v", got)
	}
	if got := DepositAmount(99.99); got != 30.00 {
		t.Fatalf("DepositAmount(99.99) = %v", got)
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(1250.5); got != "1250.50" {
		t.Fatalf("FormatMoney: %q", got)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2026-09-10 ")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if d != time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("ParseDate: %v", d)
	}
	if _, err := ParseDate("10.09.2026"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
	if FormatDate(d) != "2026-09-10" {
		t.Fatalf("FormatDate: %q", FormatDate(d))
	}
}
