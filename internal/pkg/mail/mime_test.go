package mail

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRawMessage(t *testing.T) {
	attachment := []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0xff, 0x10, 0x20}

	msg := Message{
		To:      "reader@example.com",
		Subject: "Your report summary",
		Text:    "- first point\n- second point",
		HTML:    "<ul><li>first point</li></ul>",
		Attachment: &Attachment{
			Filename:    "report.xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     attachment,
		},
	}

	raw := BuildRawMessage("sender@example.com", msg)

	parsed, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, "sender@example.com", parsed.Header.Get("From"))
	assert.Equal(t, "reader@example.com", parsed.Header.Get("To"))

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(parsed.Body, params["boundary"])

	// First part: the multipart/alternative body.
	part, err := mr.NextPart()
	require.NoError(t, err)
	altType, altParams, err := mime.ParseMediaType(part.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/alternative", altType)

	altReader := multipart.NewReader(part, altParams["boundary"])

	textPart, err := altReader.NextPart()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(textPart.Header.Get("Content-Type"), "text/plain"))
	textBody, err := io.ReadAll(textPart)
	require.NoError(t, err)
	assert.Contains(t, string(textBody), "- first point")

	htmlPart, err := altReader.NextPart()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(htmlPart.Header.Get("Content-Type"), "text/html"))
	htmlBody, err := io.ReadAll(htmlPart)
	require.NoError(t, err)
	assert.Contains(t, string(htmlBody), "<ul>")

	// Second part: the attachment, base64 decoded back to the exact bytes.
	attPart, err := mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "base64", attPart.Header.Get("Content-Transfer-Encoding"))
	assert.Contains(t, attPart.Header.Get("Content-Disposition"), `filename="report.xlsx"`)

	encoded, err := io.ReadAll(attPart)
	require.NoError(t, err)
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(encoded), "\r\n", ""))
	require.NoError(t, err)
	assert.Equal(t, attachment, decoded)
}

func TestBuildRawMessageWithoutAttachment(t *testing.T) {
	raw := BuildRawMessage("sender@example.com", Message{
		To:      "reader@example.com",
		Subject: "hello",
		Text:    "plain",
		HTML:    "<p>plain</p>",
	})

	parsed, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)

	_, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)

	mr := multipart.NewReader(parsed.Body, params["boundary"])
	parts := 0
	for {
		_, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		parts++
	}
	assert.Equal(t, 1, parts)
}

func TestWriteBase64Wrapped(t *testing.T) {
	var buf bytes.Buffer
	writeBase64Wrapped(&buf, bytes.Repeat([]byte{0xab}, 200))

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(line), 76)
	}
}
