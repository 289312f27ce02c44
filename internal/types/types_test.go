package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodyTextFlattensParts(t *testing.T) {
	m := RawMessage{Parts: []BodyPart{
		{MimeType: "text/plain", Content: "お名前: 山田太郎"},
		{MimeType: "text/plain", Content: "電話番号: 090-1234-5678"},
	}}
	assert.Equal(t, "お名前: 山田太郎\n電話番号: 090-1234-5678", m.BodyText())
}

func TestBodyTextStripsHTML(t *testing.T) {
	m := RawMessage{Parts: []BodyPart{
		{MimeType: "text/html", Content: "<html><body><p>お問い合わせ内容:</p><b>内覧希望</b></body></html>"},
	}}
	assert.Equal(t, "お問い合わせ内容:内覧希望", m.BodyText())
}

func TestBodyTextIgnoresOtherMimeTypes(t *testing.T) {
	m := RawMessage{Parts: []BodyPart{
		{MimeType: "image/png", Content: "binary"},
		{MimeType: "text/plain", Content: "本文"},
	}}
	assert.Equal(t, "本文", m.BodyText())
}

func TestBodyTextEmpty(t *testing.T) {
	var m RawMessage
	assert.Empty(t, m.BodyText())
}
