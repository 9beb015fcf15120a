package renderer

import (
	"bytes"
	"io"

	"github.com/etnz/fintrack"
	md "github.com/nao1215/markdown"
)

// writeTable appends t to doc with headers and cells written as given: no
// upper-cased headers, no wrapped cells.
func writeTable(doc *md.Markdown, t md.TableSet) {
	doc.CustomTable(t, md.TableOptions{AutoWrapText: false, AutoFormatHeaders: false})
}

// ConditionalBlock lets you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// status is the settlement status of tx as a short word.
func status(tx fintrack.Transaction) string {
	if tx.IsEffectuated {
		return "settled"
	}
	return "pending"
}

// signed returns the value of tx signed by its direction.
func signed(tx fintrack.Transaction) fintrack.Money {
	if tx.Type == fintrack.Expense {
		return tx.Value.Neg()
	}
	return tx.Value
}
