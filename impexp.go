package fintrack

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// this file contains the export formats meant for other tools, backups are in encode.go.

var csvHeader = []string{
	"type", "id", "name", "value", "date", "category", "description",
	"isRecurring", "recurrenceType", "recurrenceCount", "isPartOfRecurrence", "recurrenceGroupId",
	"createdAt", "walletId", "isEffectuated", "effectuatedAt", "transferId",
}

// ExportCSV writes the transactions as CSV, one line per transaction after a header line.
func ExportCSV(w io.Writer, txs []Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("cannot write csv header: %w", err)
	}
	for _, tx := range txs {
		count := ""
		if tx.RecurrenceCount > 0 {
			count = strconv.Itoa(tx.RecurrenceCount)
		}
		effectuatedAt := ""
		if tx.EffectuatedAt != nil {
			effectuatedAt = tx.EffectuatedAt.Format(time.RFC3339)
		}
		record := []string{
			string(tx.Type),
			tx.ID,
			tx.Name,
			tx.Value.String(),
			tx.Date.String(),
			tx.Category,
			tx.Description,
			strconv.FormatBool(tx.IsRecurring),
			string(tx.RecurrenceType),
			count,
			strconv.FormatBool(tx.IsPartOfRecurrence),
			tx.RecurrenceGroupID,
			tx.CreatedAt.Format(time.RFC3339),
			tx.WalletID,
			strconv.FormatBool(tx.IsEffectuated),
			effectuatedAt,
			tx.TransferID,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write transaction %q: %w", tx.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
