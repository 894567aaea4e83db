package domain

// Account is a demo bank account served by the backend.
type Account struct {
	Number       string        `dynamodbav:"number"`
	Name         string        `dynamodbav:"name"`
	Balance      float64       `dynamodbav:"balance"`
	Transactions []Transaction `dynamodbav:"transactions"`
	CardStatus   string        `dynamodbav:"cardStatus"`
	Loans        []Loan        `dynamodbav:"loans"`
}

// Transaction is a single ledger entry; negative amounts are debits.
type Transaction struct {
	Date        string  `dynamodbav:"date"`
	Description string  `dynamodbav:"description"`
	Amount      float64 `dynamodbav:"amount"`
}

// Loan is an outstanding loan on an account.
type Loan struct {
	Type    string  `dynamodbav:"type"`
	Amount  float64 `dynamodbav:"amount"`
	EMI     float64 `dynamodbav:"emi"`
	DueDate string  `dynamodbav:"dueDate"`
}

const (
	CardActive  = "active"
	CardBlocked = "blocked"
)
