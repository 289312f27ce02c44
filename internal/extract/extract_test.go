package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawadari/hankyo/internal/types"
)

func fieldByName(fields []types.ExtractedField, name string) (types.ExtractedField, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return types.ExtractedField{}, false
}

func TestFieldsLabeledForm(t *testing.T) {
	text := "お名前: 山田太郎 様\nメールアドレス: Taro.Yamada@Example.COM\n電話番号: 09012345678\n年齢: 45歳\n郵便番号: 1234567\nご住所: 東京都渋谷区1-2-3"

	fields := Fields(text)

	name, ok := fieldByName(fields, "name")
	require.True(t, ok)
	assert.Equal(t, "山田太郎", name.Value, "honorific stripped")
	assert.GreaterOrEqual(t, name.Confidence, 0.9)

	email, ok := fieldByName(fields, "email")
	require.True(t, ok)
	assert.Equal(t, "taro.yamada@example.com", email.Value)

	phone, ok := fieldByName(fields, "phone")
	require.True(t, ok)
	assert.Equal(t, "090-1234-5678", phone.Value)

	age, ok := fieldByName(fields, "age")
	require.True(t, ok)
	assert.Equal(t, "45", age.Value)

	postal, ok := fieldByName(fields, "postal_code")
	require.True(t, ok)
	assert.Equal(t, "123-4567", postal.Value)

	addr, ok := fieldByName(fields, "address")
	require.True(t, ok)
	assert.Equal(t, "東京都渋谷区1-2-3", addr.Value)
}

func TestAgeOutOfRangeRejected(t *testing.T) {
	fields := Fields("年齢: 150歳")
	_, ok := fieldByName(fields, "age")
	assert.False(t, ok, "age over 120 must not survive validation")
}

func TestPhoneCanonicalForms(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"09012345678", "090-1234-5678", true},
		{"0312345678", "03-1234-5678", true},
		{"0451234567", "045-123-4567", true},
		{"(03) 1234-5678", "03-1234-5678", true},
		{"12345678", "", false},
		{"090-1234-56789", "", false},
	}
	for _, tt := range tests {
		got, ok := canonicalPhone(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestURLCanonicalForm(t *testing.T) {
	fields := Fields("詳細はこちら URL: www.example.co.jp/bukken/123")
	u, ok := fieldByName(fields, "url")
	require.True(t, ok)
	assert.Equal(t, "https://www.example.co.jp/bukken/123", u.Value)
}

func TestInquiryTextSpansLines(t *testing.T) {
	text := "お問い合わせ内容:\n来週の土日に内覧を希望します。\nペット可であるか教えてください。\n\n送信日時: 2026-01-10"
	fields := Fields(text)
	inq, ok := fieldByName(fields, "inquiry_text")
	require.True(t, ok)
	assert.Contains(t, inq.Value, "内覧を希望")
	assert.Contains(t, inq.Value, "ペット可")
	assert.NotContains(t, inq.Value, "送信日時")
}

func TestDuplicateValueKeepsBestConfidence(t *testing.T) {
	text := "メールアドレス: taro@example.com\n連絡先 taro@example.com"
	fields := Fields(text)
	email, ok := fieldByName(fields, "email")
	require.True(t, ok)
	assert.Equal(t, "taro@example.com", email.Value)
	assert.GreaterOrEqual(t, email.Confidence, 0.95)
}

func TestContextBoostCapped(t *testing.T) {
	boost := contextBoost("phone", "電話 連絡 tel 携帯 090-1234-5678", 15)
	assert.InDelta(t, contextBoostCap, boost, 1e-9)
}

func TestMeanConfidence(t *testing.T) {
	assert.Zero(t, MeanConfidence(nil))
	fields := []types.ExtractedField{{Confidence: 0.8}, {Confidence: 0.6}}
	assert.InDelta(t, 0.7, MeanConfidence(fields), 1e-9)
}

func TestNoFieldsInNoise(t *testing.T) {
	fields := Fields("weekly newsletter issue 42")
	for _, f := range fields {
		if f.Name == "name" || f.Name == "email" || f.Name == "phone" {
			t.Fatalf("unexpected %s = %q", f.Name, f.Value)
		}
	}
}
