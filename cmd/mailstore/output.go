package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vullk4n/gestao-de-emails/internal/model"
	"github.com/vullk4n/gestao-de-emails/internal/theme"
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func categoryLabel(c *model.Category) string {
	if c == nil {
		return theme.CategoryStyle("").Render("-")
	}
	return theme.CategoryStyle(c.Color).Render(c.Name)
}

func flagMarks(e model.Email) string {
	var marks []string
	if !e.Read {
		marks = append(marks, theme.FlagStyle("unread").Render("●"))
	}
	if e.Important {
		marks = append(marks, theme.FlagStyle("important").Render("!"))
	}
	if e.Archived {
		marks = append(marks, theme.FlagStyle("archived").Render("A"))
	}
	return strings.Join(marks, "")
}

func printEmails(w io.Writer, emails []model.Email) {
	for _, e := range emails {
		subject := e.Subject
		if !e.Read {
			subject = theme.UnreadStyle.Render(subject)
		}
		fmt.Fprintf(w, "%s %s %s %s %s %s\n",
			theme.MutedStyle.Render(fmt.Sprintf("%5d", e.ID)),
			flagMarks(e),
			theme.MutedStyle.Render(e.SentAt.Local().Format("2006-01-02 15:04")),
			categoryLabel(e.Category),
			e.Sender,
			subject,
		)
	}
}

func printEmail(w io.Writer, e *model.Email, attachments []model.Attachment) {
	label := func(s string) string { return theme.LabelStyle.Render(fmt.Sprintf("%-10s", s)) }

	lines := []string{
		label("From") + e.Sender,
		label("To") + e.Recipient,
		label("Subject") + e.Subject,
		label("Sent") + e.SentAt.Local().Format("2006-01-02 15:04:05") +
			theme.MutedStyle.Render(" ("+humanize.Time(e.SentAt)+")"),
	}
	if e.ReceivedAt != nil {
		lines = append(lines, label("Received")+e.ReceivedAt.Local().Format("2006-01-02 15:04:05"))
	}
	lines = append(lines, label("Category")+categoryLabel(e.Category))
	if marks := flagMarks(*e); marks != "" {
		lines = append(lines, label("Flags")+marks)
	}
	if e.Body != "" {
		lines = append(lines, "", e.Body)
	}
	if len(attachments) > 0 {
		lines = append(lines, "", theme.LabelStyle.Render("Attachments"))
		for _, a := range attachments {
			size := "?"
			if a.Size != nil {
				size = humanize.IBytes(uint64(*a.Size))
			}
			mime := ""
			if a.MIMEType != nil {
				mime = *a.MIMEType
			}
			lines = append(lines, fmt.Sprintf("  %d  %s  %s  %s", a.ID, a.FileName, size, theme.MutedStyle.Render(mime)))
		}
	}

	header := theme.HeaderStyle.Render(fmt.Sprintf("Email #%d", e.ID))
	fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, header,
		theme.DetailPanelStyle.Render(strings.Join(lines, "\n"))))
}

func printCategories(w io.Writer, categories []model.Category) {
	for _, c := range categories {
		fmt.Fprintf(w, "%s %s %s\n",
			theme.MutedStyle.Render(fmt.Sprintf("%3d", c.ID)),
			theme.CategoryStyle(c.Color).Render(c.Name),
			theme.MutedStyle.Render(c.Description),
		)
	}
}

func printStats(w io.Writer, st *model.Stats) {
	fmt.Fprintln(w, theme.HeaderStyle.Render("Mailbox"))
	fmt.Fprintf(w, "%s %s\n", theme.LabelStyle.Render("Total        "), humanize.Comma(int64(st.Total)))
	fmt.Fprintf(w, "%s %s\n", theme.LabelStyle.Render("Unread       "), humanize.Comma(int64(st.Unread)))
	fmt.Fprintf(w, "%s %s\n", theme.LabelStyle.Render("Important    "), humanize.Comma(int64(st.Important)))
	fmt.Fprintf(w, "%s %s\n", theme.LabelStyle.Render("Archived     "), humanize.Comma(int64(st.Archived)))
	fmt.Fprintf(w, "%s %s\n", theme.LabelStyle.Render("Uncategorized"), humanize.Comma(int64(st.Uncategorized)))

	fmt.Fprintln(w)
	fmt.Fprintln(w, theme.HeaderStyle.Render("By category"))
	for _, c := range st.ByCategory {
		fmt.Fprintf(w, "%6s %s\n", humanize.Comma(int64(c.Count)), theme.CategoryStyle(c.Color).Render(c.Name))
	}
}
