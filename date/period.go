package date

import (
	"fmt"
	"strings"
	"time"
)

// Period is a standard calendar period used to bucket dates.
type Period int

const (
	Daily Period = iota
	Weekly
	Biweekly // half month: days 1 to 15, then 16 to the end of the month.
	Monthly
	Quarterly
	Yearly
)

// Periods lists every period, shortest first.
var Periods = []Period{Daily, Weekly, Biweekly, Monthly, Quarterly, Yearly}

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Biweekly:
		return "biweekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(strings.TrimSpace(p))
	switch p {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "biweekly", "fortnight":
		return Biweekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %s", p)
	}
}

// StartOf returns the date of begining of a given period
func (d Date) StartOf(period Period) Date {
	switch period {
	case Daily:
		return d
	case Weekly:
		offset := int(d.Weekday() - time.Monday)
		if offset < 0 {
			offset += 7
		}
		return d.Add(-offset)
	case Biweekly:
		if d.Day() <= 15 {
			return New(d.Year(), d.Month(), 1)
		}
		return New(d.Year(), d.Month(), 16)
	case Monthly:
		return New(d.Year(), d.Month(), 1)
	case Quarterly:
		quarter := (d.Month() - 1) / 3
		return New(d.Year(), quarter*3+1, 1)
	case Yearly:
		return New(d.Year(), time.January, 1)
	default:
		panic("unknown period")
	}
}

// EndOf returns the date of end of a given period
func (d Date) EndOf(period Period) Date {
	switch period {
	case Daily:
		return d
	case Weekly:
		return d.StartOf(Weekly).Add(6)
	case Biweekly:
		if d.Day() <= 15 {
			return New(d.Year(), d.Month(), 15)
		}
		return New(d.Year(), d.Month()+1, 0)
	case Monthly:
		return New(d.Year(), d.Month()+1, 0)
	case Quarterly:
		quarter := (d.Month() - 1) / 3
		endMonth := quarter*3 + 3
		// day 0 of the next month is the last day of endMonth.
		return New(d.Year(), endMonth+1, 0)
	case Yearly:
		return New(d.Year()+1, time.January, 0)
	default:
		panic("unknown period")
	}
}
