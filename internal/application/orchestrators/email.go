package orchestrators

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	emailAdapter "frontdesk/internal/adapters/email"
	"frontdesk/internal/adapters/spreadsheet"
	"frontdesk/internal/domain/summary"
)

// SummarySource fetches the attendance summary.
type SummarySource interface {
	AttendanceSummary(ctx context.Context) (summary.Summary, error)
}

// EmailSummaryInput names the recipient of the summary email.
type EmailSummaryInput struct {
	To        string
	Requester string
}

// EmailSummaryDeps holds dependencies for EmailSummary.
type EmailSummaryDeps struct {
	Summary SummarySource
	Sender  emailAdapter.Sender
	From    string // empty uses the sender's default
	Now     func() time.Time
}

// ErrInvalidRecipient is returned for an unparseable recipient address.
var ErrInvalidRecipient = errors.New("recipient must be a valid email address")

// summaryMarkdown renders GFM tables, escaping raw HTML.
var summaryMarkdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// ExecuteEmailSummary emails the current attendance summary: both tables in
// the body and the same data as an .xlsx attachment.
// PRE: input.To is an email address
// POST: exactly one message is handed to the sender, or an error is returned
// INVARIANT: a malformed summary is never sent
func ExecuteEmailSummary(ctx context.Context, input EmailSummaryInput, deps EmailSummaryDeps) (emailAdapter.SendResult, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(input.To))
	if err != nil {
		return emailAdapter.SendResult{}, ErrInvalidRecipient
	}

	s, err := deps.Summary.AttendanceSummary(ctx)
	if err != nil {
		return emailAdapter.SendResult{}, err
	}
	tables, err := summary.Render(s)
	if err != nil {
		return emailAdapter.SendResult{}, err
	}

	var body bytes.Buffer
	if err := summaryMarkdown.Convert([]byte(summaryBodyMarkdown(tables)), &body); err != nil {
		return emailAdapter.SendResult{}, fmt.Errorf("render summary body: %w", err)
	}
	var workbook bytes.Buffer
	if err := spreadsheet.WriteSummary(&workbook, tables); err != nil {
		return emailAdapter.SendResult{}, fmt.Errorf("render summary workbook: %w", err)
	}

	day := deps.Now().Format("2006-01-02")
	res, err := deps.Sender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{addr.Address},
		From:    deps.From,
		Subject: "Attendance summary " + day,
		HTML:    body.String(),
		Attachments: []emailAdapter.Attachment{{
			Filename:    "attendance-summary-" + day + ".xlsx",
			ContentType: spreadsheet.ContentTypeXLSX,
			Content:     workbook.Bytes(),
		}},
	})
	if err != nil {
		return emailAdapter.SendResult{}, err
	}
	slog.Info("report_event", "event", "summary_emailed", "to", addr.Address, "by", input.Requester, "message_id", res.MessageID)
	return res, nil
}

// summaryBodyMarkdown lays both tables out as markdown.
func summaryBodyMarkdown(t summary.Tables) string {
	var b strings.Builder
	writeTable := func(title string, columns []string, rows []summary.Row) {
		fmt.Fprintf(&b, "## %s\n\n", title)
		if len(rows) == 0 {
			b.WriteString("No hours recorded.\n\n")
			return
		}
		b.WriteString("| " + strings.Join(columns, " | ") + " |\n")
		b.WriteString(strings.Repeat("| --- ", len(columns)) + "|\n")
		for _, r := range rows {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", escapeCell(r.Employee), r.Key, r.Hours)
		}
		b.WriteString("\n")
	}
	writeTable("Daily", summary.DailyColumns, t.Daily)
	writeTable("Monthly", summary.MonthlyColumns, t.Monthly)
	return b.String()
}

func escapeCell(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}
