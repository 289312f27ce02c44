package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextFoldsFullWidth(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fullwidth ascii", "ＡＢＣ１２３", "ABC123"},
		{"fullwidth colon", "お名前：山田", "お名前:山田"},
		{"halfwidth katakana", "ﾔﾏﾓﾄ ﾀﾛｳ", "ヤマモト タロウ"},
		{"ideographic punctuation", "はい、です。", "はい,です."},
		{"wave dash variants", "10時〜12時", "10時~12時"},
		{"brackets", "【重要】お知らせ", "[重要]お知らせ"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestTextCollapsesWhitespace(t *testing.T) {
	in := "お名前:  山田\t太郎   \n\n\n\nメール: a@b.jp  \n"
	assert.Equal(t, "お名前: 山田 太郎\n\nメール: a@b.jp", Text(in))
}

func TestTextFoldsIdeographicSpace(t *testing.T) {
	assert.Equal(t, "山田 太郎", Text("山田　太郎"))
}

func TestMessagePrependsSubject(t *testing.T) {
	got := Message("お問い合わせ", "本文です")
	assert.Equal(t, "お問い合わせ\n本文です", got)
}

func TestTextIdempotent(t *testing.T) {
	in := "【内覧予約】　お名前：ＹＡＭＡＤＡ\n\n\n電話：０９０−１２３４−５６７８"
	once := Text(in)
	assert.Equal(t, once, Text(once))
}
