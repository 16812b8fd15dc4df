package mail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"net/textproto"
)

const attachmentContentTypeDefault = "application/octet-stream"

// BuildRawMessage renders the message as a raw RFC 5322 multipart email:
// an outer multipart/mixed wrapping a multipart/alternative (text/plain +
// text/html) plus one base64-encoded attachment part. The attachment bytes
// go through base64 untouched, so the recipient receives them
// byte-for-byte.
func BuildRawMessage(from string, msg Message) []byte {
	var buf bytes.Buffer
	mixed := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mixed.Boundary())

	// The alternative body is rendered first so its boundary is known when
	// the enclosing part header is written.
	var altBuf bytes.Buffer
	alt := multipart.NewWriter(&altBuf)
	textPart, _ := alt.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/plain; charset=UTF-8"},
	})
	fmt.Fprintf(textPart, "%s\r\n", msg.Text)
	htmlPart, _ := alt.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"text/html; charset=UTF-8"},
	})
	fmt.Fprintf(htmlPart, "%s\r\n", msg.HTML)
	alt.Close()

	altPart, _ := mixed.CreatePart(textproto.MIMEHeader{
		"Content-Type": {fmt.Sprintf("multipart/alternative; boundary=%q", alt.Boundary())},
	})
	altPart.Write(altBuf.Bytes())

	if a := msg.Attachment; a != nil {
		contentType := a.ContentType
		if contentType == "" {
			contentType = attachmentContentTypeDefault
		}
		attPart, _ := mixed.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {fmt.Sprintf("%s; name=%q", contentType, a.Filename)},
			"Content-Transfer-Encoding": {"base64"},
			"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", a.Filename)},
		})
		writeBase64Wrapped(attPart, a.Content)
	}

	mixed.Close()
	return buf.Bytes()
}

// writeBase64Wrapped emits base64 data in 76-column lines per RFC 2045.
func writeBase64Wrapped(w interface{ Write([]byte) (int, error) }, data []byte) {
	encoded := base64.StdEncoding.EncodeToString(data)
	const lineLen = 76
	for len(encoded) > 0 {
		n := lineLen
		if n > len(encoded) {
			n = len(encoded)
		}
		w.Write([]byte(encoded[:n]))
		w.Write([]byte("\r\n"))
		encoded = encoded[n:]
	}
}
