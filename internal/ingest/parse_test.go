package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const multipartMessage = "From: Alice <alice@example.com>\r\n" +
	"To: Bob <bob@example.com>\r\n" +
	"Subject: =?UTF-8?Q?Relat=C3=B3rio_mensal?=\r\n" +
	"Date: Fri, 01 Mar 2024 09:00:00 +0000\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/mixed; boundary=XYZ\r\n" +
	"\r\n" +
	"--XYZ\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"See the attached report.\r\n" +
	"--XYZ\r\n" +
	"Content-Type: text/csv\r\n" +
	"Content-Disposition: attachment; filename=\"report.csv\"\r\n" +
	"\r\n" +
	"a,b\r\n1,2\r\n" +
	"--XYZ--\r\n"

func TestParseMessage(t *testing.T) {
	msg, err := ParseMessage(strings.NewReader(multipartMessage))
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", msg.From)
	assert.Equal(t, "bob@example.com", msg.To)
	assert.Equal(t, "Relatório mensal", msg.Subject)
	assert.True(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC).Equal(msg.Date))
	assert.Equal(t, "See the attached report.", strings.TrimSpace(msg.Body()))

	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "report.csv", msg.Attachments[0].FileName)
	assert.Equal(t, "text/csv", msg.Attachments[0].MIMEType)
	assert.Equal(t, "a,b\r\n1,2", string(msg.Attachments[0].Content))
}

func TestParseMessageHTMLOnly(t *testing.T) {
	raw := "From: news@example.com\r\n" +
		"To: me@example.com\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<html><body><p>Hello &amp; welcome</p><div>Second line</div></body></html>\r\n"

	msg, err := ParseMessage(strings.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, NoSubject, msg.Subject)
	assert.True(t, msg.Date.IsZero())
	assert.Empty(t, msg.TextBody)
	assert.Equal(t, "Hello & welcome\nSecond line", msg.Body())
}

func TestParseMessagePlain(t *testing.T) {
	raw := "From: a@x.com\r\nTo: b@x.com\r\nSubject: Plain\r\n\r\nbody text\r\n"

	msg, err := ParseMessage(strings.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "Plain", msg.Subject)
	assert.Equal(t, "body text", strings.TrimSpace(msg.Body()))
	assert.Empty(t, msg.Attachments)
}

func TestParseMessageMalformed(t *testing.T) {
	_, err := ParseMessage(strings.NewReader("this is not a header\r\n"))
	assert.ErrorIs(t, err, ErrMalformedMessage)
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"<b>bold</b> &lt;tag&gt;", "bold <tag>"},
		{"a<br>b<br/>c", "a\nb\nc"},
		{"<p>one</p><p></p><p></p><p>two</p>", "one\n\ntwo"},
		{"&quot;q&quot; &#39;s&#39;&nbsp;x", `"q" 's' x`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripHTML(tt.in), "stripHTML(%q)", tt.in)
	}
}
