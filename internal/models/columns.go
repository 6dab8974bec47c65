package models

// Column headers of the intermediate formatted spreadsheet, in output order.
const (
	ColMovement      = "Movimentação"
	ColCode          = "Código"
	ColCounterparty  = "Cliente/Fornecedor"
	ColBranch        = "Filial"
	ColAmount        = "Valor"
	ColPaymentMethod = "Forma de Pagamento"
)

// FormattedColumns returns the intermediate spreadsheet header row
func FormattedColumns() []string {
	return []string{ColMovement, ColCode, ColCounterparty, ColBranch, ColAmount, ColPaymentMethod}
}

// Column headers expected in the bank movement ledger.
const (
	LedgerColCode         = "Código"
	LedgerColAmount       = "Valor (R$)"
	LedgerColBranch       = "Filial"
	LedgerColMovementDate = "Data Movimentação"
	LedgerColCounterparty = "Cliente/Fornecedor"
)

// LedgerRequiredColumns returns the columns a ledger file must carry
func LedgerRequiredColumns() []string {
	return []string{LedgerColCode, LedgerColAmount, LedgerColBranch, LedgerColMovementDate, LedgerColCounterparty}
}

// Column headers of the per-account accounting-import spreadsheets, in
// output order.
const (
	ImportColCompetenceDate    = "Data de Competência"
	ImportColDueDate           = "Data de Vencimento"
	ImportColPaymentDate       = "Data de Pagamento"
	ImportColAmount            = "Valor"
	ImportColCategory          = "Categoria"
	ImportColDescription       = "Descrição"
	ImportColCounterparty      = "Cliente/Fornecedor"
	ImportColCounterpartyTaxID = "CNPJ/CPF Cliente/Fornecedor"
	ImportColCostCenter        = "Centro de Custo"
	ImportColObservations      = "Observações"
)

// ImportColumns returns the accounting-import header row
func ImportColumns() []string {
	return []string{
		ImportColCompetenceDate,
		ImportColDueDate,
		ImportColPaymentDate,
		ImportColAmount,
		ImportColCategory,
		ImportColDescription,
		ImportColCounterparty,
		ImportColCounterpartyTaxID,
		ImportColCostCenter,
		ImportColObservations,
	}
}
