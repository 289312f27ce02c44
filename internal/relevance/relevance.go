// Package relevance decides whether a normalized message is worth
// running through field extraction.
//
// Free-text inquiry mail has no fixed schema, so a cheap weighted
// heuristic substitutes for real parsing: keyword hits and structural
// form patterns add weight, newsletter markers subtract it, and the raw
// score is normalized against MaxRawScore to yield a confidence.
package relevance

import (
	"regexp"
	"strings"
)

// Tunable scoring constants. Threshold and the weights live here, not
// scattered through the scorer, so they can be adjusted and tested
// independently.
const (
	// Threshold is the minimum confidence for a message to be relevant.
	Threshold = 0.3

	// MaxRawScore normalizes the raw weighted sum into [0,1].
	MaxRawScore = 20.0

	highWeight     = 3.0
	mediumWeight   = 1.0
	negativeWeight = -4.0
)

// highKeywords are strong signals of a structured business inquiry.
var highKeywords = []string{
	"お問い合わせ", "問い合わせ", "問合せ", "inquiry",
	"申込", "申し込み", "application",
	"予約", "reservation", "booking",
	"資料請求", "見学", "内覧",
	"フォーム", "form",
	"メールアドレス",
	"反響",
}

// mediumKeywords are secondary signals: contact fields, real-estate
// vocabulary, event terms.
var mediumKeywords = []string{
	"名前", "お名前", "氏名", "name", "フリガナ",
	"メール", "email", "e-mail", "アドレス",
	"電話", "tel", "phone", "携帯",
	"住所", "address", "所在地", "郵便番号",
	"年齢", "age",
	"物件", "property", "不動産", "real estate",
	"住宅", "マンション", "アパート", "戸建", "一戸建て", "土地", "賃貸", "売買",
	"セミナー", "seminar", "イベント", "event", "説明会", "相談会", "見学会",
	"会社", "company", "登録", "registration", "相談", "consultation",
}

// negativeKeywords mark bulk mail that mimics form vocabulary.
var negativeKeywords = []string{
	"配信停止", "配信解除", "購読解除", "unsubscribe",
	"メールマガジン", "メルマガ", "newsletter",
	"広告", "advertisement", "キャンペーンのお知らせ",
}

// structuralBonus is a pattern that suggests form-like structure.
type structuralBonus struct {
	re     *regexp.Regexp
	weight float64
	name   string
}

var structuralBonuses = []structuralBonus{
	{regexp.MustCompile(`(?m)^[^\n:]{1,24}:\s*\S`), 2.0, "label_value_line"},
	{regexp.MustCompile(`@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`), 2.0, "email_address"},
	{regexp.MustCompile(`\d{2,4}-\d{2,4}-\d{3,4}`), 1.5, "digit_groups"},
	{regexp.MustCompile(`[都道府県市区町村]`), 1.5, "jp_address"},
	{regexp.MustCompile(`\d+(?:万|千万|億)円`), 1.5, "jp_price"},
	{regexp.MustCompile(`https?://\S+`), 1.0, "url"},
}

// Score reports whether text (normalized subject + body + sender)
// contains actionable form-like content, with a confidence in [0,1].
func Score(text string) (bool, float64) {
	if text == "" {
		return false, 0
	}
	lower := strings.ToLower(text)

	var raw float64
	for _, kw := range highKeywords {
		if strings.Contains(lower, kw) {
			raw += highWeight
		}
	}
	for _, kw := range mediumKeywords {
		if strings.Contains(lower, kw) {
			raw += mediumWeight
		}
	}
	for _, kw := range negativeKeywords {
		if strings.Contains(lower, kw) {
			raw += negativeWeight
		}
	}
	for _, b := range structuralBonuses {
		if b.re.MatchString(text) {
			raw += b.weight
		}
	}

	conf := raw / MaxRawScore
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	return conf >= Threshold, conf
}
