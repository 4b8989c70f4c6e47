package dashboard

import (
	"fmt"

	"domain_expiry/internal/dateformat"
	"domain_expiry/internal/model"
)

// Row is one rendered table row
type Row struct {
	Domain    string `json:"domain"`
	Expires   string `json:"expires"`
	Days      string `json:"days"`
	DaysTitle string `json:"daysTitle,omitempty"`
	Tier      Tier   `json:"tier"`
	Class     string `json:"class"`
	Icon      string `json:"icon"`
}

// BuildRows maps domains to rows in input order
func BuildRows(domains []model.DomainStatus, th Thresholds, f *dateformat.Formatter, dateFormat string) []Row {
	rows := make([]Row, 0, len(domains))
	for _, d := range domains {
		rows = append(rows, BuildRow(d, th, f, dateFormat))
	}
	return rows
}

// BuildRow renders a single domain
func BuildRow(d model.DomainStatus, th Thresholds, f *dateformat.Formatter, dateFormat string) Row {
	tier := Classify(d.DaysLeft, th)
	row := Row{
		Domain:  d.Domain,
		Expires: f.Format(model.StrVal(d.Expires), dateFormat),
		Days:    dateformat.NotAvailable,
		Tier:    tier,
		Class:   tier.Class(),
		Icon:    tier.Icon(),
	}

	if d.DaysLeft != nil {
		row.Days = fmt.Sprintf("%d days", *d.DaysLeft)
	} else if d.Error != nil && *d.Error != "" {
		row.DaysTitle = "Error: " + *d.Error
	}
	return row
}
