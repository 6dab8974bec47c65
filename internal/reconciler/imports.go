package reconciler

import (
	"fmt"

	"caixasync/internal/models"
	"caixasync/internal/normalize"
	"caixasync/pkg/errors"
)

// BuildImportRows synthesizes accounting-import rows from one account's
// matched ledger entries. The movement date stamps the competence and due
// dates; the payment date, tax id and observations stay empty for the
// accounting system to fill. A ledger entry whose date cannot be parsed is
// a hard error so a wrong competence date never reaches the accounting
// system silently.
func BuildImportRows(entries []*models.LedgerEntry, routing *RoutingConfig) ([]models.ImportRow, error) {
	if routing == nil {
		routing = DefaultRoutingConfig()
	}

	rows := make([]models.ImportRow, 0, len(entries))
	for _, entry := range entries {
		date, err := normalize.FormatDate(entry.MovementDate)
		if err != nil {
			return nil, errors.ValidationError(errors.CodeInvalidDate, "movement_date", entry.MovementDate, err).
				WithContext("code", entry.Code).
				WithSuggestion("fix the movement date in the ledger file and rerun")
		}

		rows = append(rows, models.ImportRow{
			CompetenceDate:    date,
			DueDate:           date,
			PaymentDate:       "",
			Amount:            entry.Amount,
			Category:          ImportCategory,
			Description:       fmt.Sprintf("Recebimento Mov. Nº %s", entry.Code),
			Counterparty:      entry.Counterparty,
			CounterpartyTaxID: "",
			CostCenter:        routing.CostCenterFor(entry.Branch),
		})
	}

	return rows, nil
}
