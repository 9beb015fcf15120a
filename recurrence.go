package fintrack

import (
	"fmt"

	"github.com/etnz/fintrack/date"
)

// Expand returns the instances of a recurring transaction template.
//
// A template that is not recurring, or misses its recurrence type or count,
// is returned alone and unchanged. Otherwise exactly RecurrenceCount
// instances are returned: the first one keeps the template id, the i-th is
// named "<id>-<i>" and dated i periods later. Every instance belongs to the
// group named after the template id, only the first one keeps the recurrence
// settings and the effectuation status of the template.
func Expand(template Transaction) []Transaction {
	if !template.IsRecurring || template.RecurrenceType == "" || template.RecurrenceCount <= 0 {
		return []Transaction{template.clone()}
	}

	instances := make([]Transaction, 0, template.RecurrenceCount)
	for i := range template.RecurrenceCount {
		tx := template.clone()
		tx.RecurrenceGroupID = template.ID
		tx.Date = Occurrence(template.Date, template.RecurrenceType, i)
		if i > 0 {
			tx.ID = fmt.Sprintf("%s-%d", template.ID, i)
			tx.IsPartOfRecurrence = true
			tx.IsRecurring = false
			tx.RecurrenceType = ""
			tx.RecurrenceCount = 0
			tx.IsEffectuated = false
			tx.EffectuatedAt = nil
		}
		instances = append(instances, tx)
	}
	return instances
}

// Occurrence returns the date of the i-th occurrence of a recurrence starting on start.
//
// Month and year steps are computed from start, not chained, so a series
// starting on January 31 is dated the 31st whenever the month has one.
func Occurrence(start date.Date, rt RecurrenceType, i int) date.Date {
	switch rt {
	case RecurDaily:
		return start.Add(i)
	case RecurWeekly:
		return start.Add(7 * i)
	case RecurBiweekly:
		return start.Add(14 * i)
	case RecurMonthly:
		return start.AddMonths(i)
	case RecurYearly:
		return start.AddYears(i)
	default:
		return start
	}
}

// GroupIDOf returns the recurrence group of tx: its group id if any, its own id otherwise.
func GroupIDOf(tx Transaction) string {
	if tx.RecurrenceGroupID != "" {
		return tx.RecurrenceGroupID
	}
	return tx.ID
}

// IsMemberOf reports whether tx belongs to the recurrence group groupID.
func IsMemberOf(tx Transaction, groupID string) bool { return GroupIDOf(tx) == groupID }

// inGroup reports whether tx takes part in a recurrence at all.
func inGroup(tx Transaction) bool { return tx.RecurrenceGroupID != "" || tx.IsRecurring }
