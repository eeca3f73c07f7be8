// Package ingest turns RFC 5322 message files into stored emails.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

// NoSubject replaces a missing or blank Subject header.
const NoSubject = "(no subject)"

// ErrMalformedMessage is returned when a message cannot be parsed or lacks
// the headers an email record needs.
var ErrMalformedMessage = errors.New("malformed message")

// ParsedMessage holds the content of one message.
type ParsedMessage struct {
	From        string
	To          string
	Subject     string
	Date        time.Time // zero when the header is missing
	TextBody    string
	HTMLBody    string
	Attachments []Part
}

// Part is an attachment with its content.
type Part struct {
	FileName string
	MIMEType string
	Content  []byte
}

// Body returns the plain-text body, falling back to the HTML body with
// markup removed.
func (m *ParsedMessage) Body() string {
	if strings.TrimSpace(m.TextBody) != "" {
		return m.TextBody
	}
	return stripHTML(m.HTMLBody)
}

// ParseMessage reads a message and extracts its addresses, subject, date,
// bodies and attachments.
func ParseMessage(r io.Reader) (*ParsedMessage, error) {
	mr, err := mail.CreateReader(r)
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	defer mr.Close()

	msg := &ParsedMessage{
		From: firstAddress(mr.Header, "From"),
		To:   firstAddress(mr.Header, "To"),
	}
	msg.Subject, _ = mr.Header.Subject()
	if strings.TrimSpace(msg.Subject) == "" {
		msg.Subject = NoSubject
	}
	if d, err := mr.Header.Date(); err == nil {
		msg.Date = d
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			if !message.IsUnknownCharset(err) || part == nil {
				return nil, fmt.Errorf("%w: reading part: %v", ErrMalformedMessage, err)
			}
		}

		switch h := part.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, _ := h.ContentType()
			body, err := io.ReadAll(part.Body)
			if err != nil {
				return nil, fmt.Errorf("%w: reading body: %v", ErrMalformedMessage, err)
			}

			switch {
			case contentType == "" || strings.HasPrefix(contentType, "text/plain"):
				if msg.TextBody == "" {
					msg.TextBody = string(body)
				}
			case strings.HasPrefix(contentType, "text/html"):
				if msg.HTMLBody == "" {
					msg.HTMLBody = string(body)
				}
			}

		case *mail.AttachmentHeader:
			filename, _ := h.Filename()
			contentType, _, _ := h.ContentType()
			body, err := io.ReadAll(part.Body)
			if err != nil {
				return nil, fmt.Errorf("%w: reading attachment %q: %v", ErrMalformedMessage, filename, err)
			}

			msg.Attachments = append(msg.Attachments, Part{
				FileName: filename,
				MIMEType: contentType,
				Content:  body,
			})
		}
	}

	return msg, nil
}

// firstAddress returns the first address in a header field, or the raw
// field when it does not parse as an address list.
func firstAddress(h mail.Header, key string) string {
	list, err := h.AddressList(key)
	if err == nil && len(list) > 0 {
		return list[0].Address
	}
	return strings.TrimSpace(h.Get(key))
}

// htmlTagPattern matches HTML tags for stripping.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

var htmlEntities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&nbsp;", " ",
)

// stripHTML reduces an HTML body to plain text. Block-level closing tags
// become line breaks.
func stripHTML(html string) string {
	if html == "" {
		return ""
	}

	result := html
	for _, tag := range []string{"<br>", "<br/>", "<br />", "</p>", "</div>", "</li>", "</tr>"} {
		result = strings.ReplaceAll(result, tag, "\n")
	}
	result = htmlTagPattern.ReplaceAllString(result, "")
	result = htmlEntities.Replace(result)

	for strings.Contains(result, "\n\n\n") {
		result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	}

	return strings.TrimSpace(result)
}
