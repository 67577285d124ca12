package dataset

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/Veraticus/armine/internal/model"
	"github.com/aclindsa/ofxgo"
)

// Item prefixes produced from statement transactions.
const (
	TypePrefix    = "type-"
	PayeePrefix   = "payee-"
	AmountPrefix  = "amount-"
	WeekdayPrefix = "weekday-"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	storeNumRegex = regexp.MustCompile(`#?\d{3,}`)
	spaceRegex    = regexp.MustCompile(`\s+`)
)

// payeePrefixes are card processor noise removed from payee names.
var payeePrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

// OFXReader turns OFX/QFX bank and credit card statements into datasets.
// Each statement transaction becomes one record of discrete items: its
// type, normalized payee, amount bucket and posting weekday.
type OFXReader struct {
	// Labeled moves the transaction type out of the items and into the
	// class label.
	Labeled bool
}

// NewOFXReader creates a new OFX reader.
func NewOFXReader(labeled bool) *OFXReader {
	return &OFXReader{Labeled: labeled}
}

// Read parses an OFX document and returns its transactions.
func (o *OFXReader) Read(r io.Reader) (model.Dataset, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	data := model.Dataset{}
	if o.Labeled {
		data.Labels = []model.Label{}
	}

	var bankStmts, ccStmts int
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			bankStmts++
			o.appendAll(&data, stmt.BankTranList.Transactions)
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			ccStmts++
			o.appendAll(&data, stmt.BankTranList.Transactions)
		}
	}

	slog.Info("Parsed OFX file",
		"total_transactions", data.Len(),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return data, nil
}

func (o *OFXReader) appendAll(data *model.Dataset, txns []ofxgo.Transaction) {
	for _, tx := range txns {
		tokens := []string{
			PayeePrefix + normalizePayee(payeeName(tx)),
			AmountPrefix + amountBucket(tx),
			WeekdayPrefix + strings.ToLower(tx.DtPosted.Weekday().String()),
		}
		trnType := tx.TrnType.String()
		if !o.Labeled {
			tokens = append(tokens, TypePrefix+trnType)
		}

		txn := model.NewTransaction(tokens...)
		txn.ID = string(tx.FiTID)
		data.Transactions = append(data.Transactions, txn)
		if o.Labeled {
			data.Labels = append(data.Labels, model.Label(trnType))
		}
	}
}

// preprocessOFX fixes common formatting issues in OFX files.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML files sometimes omit the closing bracket of a bare tag line
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// payeeName prefers PAYEE, then NAME, then MEMO when NAME is generic.
func payeeName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && isGenericDescription(name) {
		name = strings.TrimSpace(string(tx.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range payeePrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading MM/DD
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}
	return name
}

// normalizePayee lower cases a payee and strips store and reference numbers
// so that visits to different branches share one item.
func normalizePayee(name string) string {
	// Processor codes come before the star ("SQ *SHOP"), references after it
	if before, after, ok := strings.Cut(name, "*"); ok {
		if len(strings.TrimSpace(before)) <= 3 {
			name = after
		} else {
			name = before
		}
	}
	name = storeNumRegex.ReplaceAllString(name, "")
	name = strings.ToLower(strings.TrimSpace(spaceRegex.ReplaceAllString(name, " ")))
	name = strings.TrimRight(name, " #*-")
	if name == "" {
		return "unknown"
	}
	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}

// amountBucket places the absolute amount in a decade bucket:
// 0-10, 10-100, 100-1000 and 1000+.
func amountBucket(tx ofxgo.Transaction) string {
	amount, _ := tx.TrnAmt.Float64()
	amount = math.Abs(amount)

	switch {
	case amount < 10:
		return "0-10"
	case amount >= 1000:
		return "1000+"
	default:
		lower := math.Pow(10, math.Floor(math.Log10(amount)))
		return fmt.Sprintf("%.0f-%.0f", lower, lower*10)
	}
}
