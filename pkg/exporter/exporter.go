package exporter

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/markberger/rh-cc-exporter/pkg/config"
	"github.com/markberger/rh-cc-exporter/pkg/models"
	"github.com/markberger/rh-cc-exporter/pkg/qif"
)

// Exporter filters fetched transactions and writes the QIF file.
type Exporter struct {
	config *config.Config
	logger *log.Logger
	out    io.Writer
}

func New(cfg *config.Config, logger *log.Logger) *Exporter {
	return &Exporter{
		config: cfg,
		logger: logger,
		out:    os.Stdout,
	}
}

// Export keeps visible, posted transactions, applies the sign convention
// (outbound negative) and writes the QIF artifact to the configured path,
// overwriting any existing file. A styled summary line is printed per
// exported transaction.
func (e *Exporter) Export(transactions []models.Transaction) error {
	exportedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	skippedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))   // gray

	var records []qif.Transaction
	var hidden, unposted int
	for _, tx := range transactions {
		if !tx.Exportable() {
			if tx.Visibility != models.VisibilityVisible {
				hidden++
			} else {
				unposted++
			}
			line := fmt.Sprintf("%s | %-30s | %s | %s", tx.Timestamp.Format("2006-01-02"), tx.Merchant, tx.Visibility, tx.Status)
			fmt.Fprintln(e.out, skippedStyle.Render("- "+line))
			continue
		}

		amount := tx.SignedAmount()
		records = append(records, qif.Transaction{
			Date:   tx.Timestamp,
			Amount: amount,
			Payee:  tx.Merchant,
		})

		line := fmt.Sprintf("%s | %-30s | %s", tx.Timestamp.Format("2006-01-02"), tx.Merchant, qif.FormatAmount(amount))
		fmt.Fprintln(e.out, exportedStyle.Render("+ "+line))
	}

	account := qif.Account{
		Name:        e.config.AccountName,
		Description: e.config.AccountDescription,
		Type:        qif.CreditCard,
	}
	data := qif.Create(account, records)

	if err := os.WriteFile(e.config.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	e.logger.Info("wrote export file",
		"path", e.config.OutputPath,
		"exported", len(records),
		"hidden", hidden,
		"unposted", unposted)
	return nil
}
