package exporter

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/markberger/rh-cc-exporter/pkg/config"
	"github.com/markberger/rh-cc-exporter/pkg/models"
)

func testExporter(t *testing.T) (*Exporter, string) {
	t.Helper()
	outputPath := filepath.Join(t.TempDir(), "transactions.qif")
	cfg := &config.Config{
		OutputPath:         outputPath,
		AccountName:        "RH Gold",
		AccountDescription: "RH Gold credit card",
	}
	e := New(cfg, log.New(io.Discard))
	e.out = io.Discard
	return e, outputPath
}

func tx(date string, visibility models.Visibility, status models.Status, flow models.Flow, micro int64, merchant string) models.Transaction {
	d, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		ID:         merchant,
		Timestamp:  d,
		Amount:     decimal.New(micro, -6),
		Flow:       flow,
		Status:     status,
		Visibility: visibility,
		Merchant:   merchant,
	}
}

func TestExportFiltersAndSigns(t *testing.T) {
	e, outputPath := testExporter(t)

	transactions := []models.Transaction{
		tx("2024-01-05", models.VisibilityVisible, models.StatusPosted, models.FlowOutbound, 10000000, "Corner Coffee"),
		tx("2024-01-03", models.VisibilityHidden, models.StatusPosted, models.FlowOutbound, 5000000, "Card Check"),
		tx("2024-01-02", models.VisibilityVisible, models.StatusPending, models.FlowOutbound, 7000000, "Pending Diner"),
	}

	if err := e.Export(transactions); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	got := string(data)

	expected := "!Account\n" +
		"NRH Gold\n" +
		"DRH Gold credit card\n" +
		"TCCard\n" +
		"^\n" +
		"!Type:CCard\n" +
		"D01/05/2024\n" +
		"T-10.00\n" +
		"PCorner Coffee\n" +
		"^\n"

	if got != expected {
		t.Errorf("Output mismatch:\nExpected:\n%s\nGot:\n%s", expected, got)
	}
	if strings.Contains(got, "Card Check") {
		t.Error("Hidden transaction leaked into the export")
	}
	if strings.Contains(got, "Pending Diner") {
		t.Error("Pending transaction leaked into the export")
	}
}

func TestExportSignConvention(t *testing.T) {
	e, outputPath := testExporter(t)

	transactions := []models.Transaction{
		tx("2024-01-05", models.VisibilityVisible, models.StatusPosted, models.FlowOutbound, 50000000, "Outbound Store"),
		tx("2024-01-04", models.VisibilityVisible, models.StatusPosted, models.FlowInbound, 25000000, "Inbound Refund"),
	}

	if err := e.Export(transactions); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	got := string(data)

	if !strings.Contains(got, "T-50.00\nPOutbound Store\n") {
		t.Errorf("Expected outbound transaction exported as -50.00, got:\n%s", got)
	}
	if !strings.Contains(got, "T25.00\nPInbound Refund\n") {
		t.Errorf("Expected inbound transaction exported as 25.00, got:\n%s", got)
	}
}

func TestExportOverwritesExistingFile(t *testing.T) {
	e, outputPath := testExporter(t)

	if err := os.WriteFile(outputPath, []byte("stale content"), 0o644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	if err := e.Export(nil); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if strings.Contains(string(data), "stale content") {
		t.Error("Expected existing file to be overwritten")
	}
}
