package cli

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"jobtrack/internal/entity"
)

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// renderJobs prints jobs as a table in the store's retrieval order.
func renderJobs(w io.Writer, jobList []*entity.Job) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Title", "Company", "Status", "Deadline", "Link"})
	for _, job := range jobList {
		table.Append([]string{
			strconv.FormatInt(job.ID, 10),
			job.Title,
			job.Company,
			string(job.Status),
			orDash(job.DeadlineString()),
			orDash(job.Link),
		})
	}
	table.Render()
}

// renderJobDetail prints a single job as field/value rows.
func renderJobDetail(w io.Writer, job *entity.Job) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Field", "Value"})
	table.Append([]string{"ID", strconv.FormatInt(job.ID, 10)})
	table.Append([]string{"Title", job.Title})
	table.Append([]string{"Company", job.Company})
	table.Append([]string{"Status", string(job.Status)})
	table.Append([]string{"Deadline", orDash(job.DeadlineString())})
	table.Append([]string{"Link", orDash(job.Link)})
	table.Append([]string{"Notes", orDash(job.Notes)})
	table.Render()
}
