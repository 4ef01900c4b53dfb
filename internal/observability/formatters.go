// Package observability provides formatted record summaries for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/freelance-desk/internal/format"
	"github.com/jonathan/freelance-desk/internal/rendering"
	"github.com/jonathan/freelance-desk/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer writes boxed summaries of records
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to n runes
func pad(s string, n int) string {
	if w := len([]rune(s)); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintClient outputs a client record.
func (p *Printer) PrintClient(c *types.Client) {
	if c == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:       %s\n", c.ClientID))
	sb.WriteString(fmt.Sprintf("Name:     %s\n", c.Name))
	if c.Company != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", c.Company))
	}
	if c.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", c.Email))
	}
	if phone := c.Phone.String(); phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:    %s\n", phone))
	}
	if c.Address != "" {
		sb.WriteString(fmt.Sprintf("Address:  %s\n", c.Address))
	}
	if c.Notes != "" {
		sb.WriteString(fmt.Sprintf("\nNotes:\n  %s\n", c.Notes))
	}

	p.printBox("CLIENT "+c.DisplayName(), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProject outputs a project record with amounts in currency.
func (p *Printer) PrintProject(project *types.Project, currency string) {
	if project == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID:       %s\n", project.ProjectID))
	sb.WriteString(fmt.Sprintf("Client:   %s\n", project.ClientID))
	if project.Status != "" {
		sb.WriteString(fmt.Sprintf("Status:   %s\n", project.Status))
	}
	sb.WriteString(fmt.Sprintf("Dates:    %s → %s\n",
		format.DocumentDate(project.StartDate, "TBD"),
		format.DocumentDate(project.EndDate, "TBD")))
	sb.WriteString(fmt.Sprintf("Budget:   %s\n", format.Money(project.Budget.Float64(), currency)))
	if project.PaymentTerms != "" {
		sb.WriteString(fmt.Sprintf("Payment:  %s\n", project.PaymentTerms))
	}
	if project.ShortDescription != "" {
		sb.WriteString(fmt.Sprintf("\n%s\n", project.ShortDescription))
	}
	sb.WriteString("\n")

	writeList(&sb, "Features", project.ProjectFeatures)
	writeList(&sb, "Deliverables", project.Deliverables)

	p.printBox("PROJECT "+project.ProjectTitle, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSettings outputs the operator settings.
func (p *Printer) PrintSettings(s *types.Settings) {
	if s == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", s.YourName))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", s.YourTitle))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", s.YourEmail))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", s.YourPhone))
	sb.WriteString(fmt.Sprintf("Currency: %s", s.Currency()))

	p.printBox("SETTINGS", sb.String())
}

// PrintDocument outputs the identity of a rendered document.
func (p *Printer) PrintDocument(d *rendering.Document) {
	if d == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Kind:      %s\n", d.Kind))
	sb.WriteString(fmt.Sprintf("Reference: %s\n", d.Reference))
	sb.WriteString(fmt.Sprintf("Filename:  %s\n", d.Filename))
	sb.WriteString(fmt.Sprintf("Size:      %d bytes", len(d.HTML)))

	p.printBox(strings.ToUpper(d.Title), sb.String())
}
