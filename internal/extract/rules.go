package extract

import "regexp"

// Rule locates one candidate value for a field. Rules for a field are
// ordered strongest-label first; Confidence is the base score a match
// carries before context boosting.
type Rule struct {
	Pattern     *regexp.Regexp
	Confidence  float64
	Description string
}

// Field names produced by the extractor. The order is the emission
// order, which keeps batch logs and tests deterministic.
var FieldOrder = []string{
	"name", "furigana", "email", "phone", "age", "postal_code", "address",
	"company_name", "branch_name",
	"event_name", "event_date", "event_time", "event_place",
	"preferred_date", "preferred_time",
	"inquiry_text", "inquiry_source",
	"budget_monthly", "monthly_rent",
	"property_name", "property_type", "price", "room_layout",
	"url",
}

// fieldRules holds the per-field rule tables. Text reaching these rules
// has been normalized (full-width folded, ASCII colons), but the
// full-width variants stay in the classes as insurance.
var fieldRules = map[string][]Rule{
	"name": {
		{regexp.MustCompile(`(?mi)(?:お名前|氏名|名前|Name)[：:\s]*([^\n\r]+?)\s*(?:$|フリガナ|ふりがな|カナ)`), 0.9, "labeled name"},
		{regexp.MustCompile(`(?m)お客様?名[：:\s]*([^\n\r]+?)$`), 0.9, "customer name label"},
		{regexp.MustCompile(`(?m)申込者?名[：:\s]*([^\n\r]+?)$`), 0.85, "applicant name label"},
		{regexp.MustCompile(`(?m)ご依頼者[：:\s]*([^\n\r]+?)$`), 0.85, "requester label"},
		{regexp.MustCompile(`(?m)([^\s\n:]{2,10})\s*(?:様|さん|殿)(?:\s|$)`), 0.5, "honorific suffix"},
	},
	"furigana": {
		{regexp.MustCompile(`(?mi)(?:フリガナ|ふりがな|カナ|Furigana)[：:\s]*([^\n\r]+?)$`), 0.9, "labeled furigana"},
		{regexp.MustCompile(`(?m)(?:よみがな|読み仮名)[：:\s]*([^\n\r]+?)$`), 0.85, "labeled yomigana"},
		{regexp.MustCompile(`(?m)^([ァ-ヶー][ァ-ヶー\s]{2,19})$`), 0.4, "bare katakana line"},
	},
	"email": {
		{regexp.MustCompile(`(?i)(?:メールアドレス|E-?mail)[：:\s]*([^\s\n]+@[^\s\n]+)`), 0.95, "labeled email"},
		{regexp.MustCompile(`(?m)連絡先[^\n]*?([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`), 0.85, "contact email"},
		{regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`), 0.7, "bare email"},
	},
	"phone": {
		{regexp.MustCompile(`(?mi)(?:電話番号|TEL|Phone|携帯)[：:\s]*([0-9\-()\s]+?)$`), 0.95, "labeled phone"},
		{regexp.MustCompile(`(?m)(?:連絡先|でんわ)[：:\s]*([0-9\-()\s]+?)$`), 0.8, "contact phone"},
		{regexp.MustCompile(`(0\d{1,4}-\d{1,4}-\d{3,4})`), 0.7, "hyphenated number"},
		{regexp.MustCompile(`(\(0\d{1,4}\)\s?\d{2,4}[-\s]?\d{4})`), 0.65, "parenthesized area code"},
		{regexp.MustCompile(`(0\d{9,10})`), 0.5, "bare digit run"},
	},
	"age": {
		{regexp.MustCompile(`(?mi)(?:年齢|Age)[：:\s]*(\d+)\s*(?:歳|才|$)`), 0.95, "labeled age"},
		{regexp.MustCompile(`(\d+)\s*(?:歳|才)(?:\s|$)`), 0.7, "age suffix"},
	},
	"postal_code": {
		{regexp.MustCompile(`(?i)(?:郵便番号|Postal)[：:\s]*(〒?\s*\d{3}-?\d{4})`), 0.95, "labeled postal code"},
		{regexp.MustCompile(`〒\s*(\d{3}-?\d{4})`), 0.9, "postal mark"},
		{regexp.MustCompile(`(?m)(\d{3}-\d{4})(?:\s|$)`), 0.5, "bare seven digits"},
	},
	"address": {
		{regexp.MustCompile(`(?mi)(?:ご住所|住所|所在地|Address)[：:\s]*([^\n]+?)$`), 0.95, "labeled address"},
		{regexp.MustCompile(`(?m)((?:東京都|北海道|(?:大阪|京都)府|[^\s\n]{2,4}県)[^\n]{3,40})$`), 0.6, "prefecture line"},
	},
	"company_name": {
		{regexp.MustCompile(`(?mi)(?:会社名|企業名|法人名|Company)[：:\s]*([^\n]+?)$`), 0.95, "labeled company"},
		{regexp.MustCompile(`(?m)(?:勤務先|お勤め先)[：:\s]*([^\n]+?)$`), 0.85, "employer label"},
		{regexp.MustCompile(`([^\s:]+(?:株式会社|有限会社|合同会社)|(?:株式会社|有限会社|合同会社)[^\s\n]+)`), 0.7, "corporate suffix"},
		{regexp.MustCompile(`(?i)([^\s:]+\s?(?:Inc|Corp|Ltd|LLC)\.?)(?:\s|$)`), 0.6, "english corporate suffix"},
	},
	"branch_name": {
		{regexp.MustCompile(`(?mi)(?:支店名|店舗名|営業所|Branch)[：:\s]*([^\n]+?)$`), 0.95, "labeled branch"},
		{regexp.MustCompile(`(?m)([^\s:]+(?:支店|営業所|支社))(?:\s|$)`), 0.6, "branch suffix"},
	},
	"event_name": {
		{regexp.MustCompile(`(?mi)(?:イベント名|セミナー名|講座名|Event)[：:\s]*([^\n]+?)$`), 0.95, "labeled event"},
		{regexp.MustCompile(`(?m)([^\n:]*(?:セミナー|説明会|相談会|見学会|内覧会)[^\n:]*)$`), 0.5, "event term line"},
	},
	"event_date": {
		{regexp.MustCompile(`(?mi)(?:開催日|実施日|日程|Date)[：:\s]*([^\n]+?)$`), 0.95, "labeled date"},
		{regexp.MustCompile(`(\d{4}年\d{1,2}月\d{1,2}日)`), 0.8, "yyyy年mm月dd日"},
		{regexp.MustCompile(`(\d{4}/\d{1,2}/\d{1,2})`), 0.75, "slash date"},
		{regexp.MustCompile(`((?:令和|平成)\d{1,2}年\d{1,2}月\d{1,2}日)`), 0.75, "era date"},
		{regexp.MustCompile(`(\d{1,2}月\d{1,2}日)`), 0.6, "mm月dd日"},
	},
	"event_time": {
		{regexp.MustCompile(`(?mi)(?:開催時間|実施時間|時間|Time)[：:\s]*([^\n]+?)$`), 0.9, "labeled time"},
		{regexp.MustCompile(`(\d{1,2}:\d{2}\s*[~〜-]\s*\d{1,2}:\d{2})`), 0.8, "clock range"},
		{regexp.MustCompile(`(\d{1,2}時(?:\d{1,2}分)?\s*[~〜-]\s*\d{1,2}時(?:\d{1,2}分)?)`), 0.75, "hour range"},
		{regexp.MustCompile(`((?:午前|午後)\d{1,2}時(?:\d{1,2}分)?)`), 0.6, "am/pm hour"},
	},
	"event_place": {
		{regexp.MustCompile(`(?mi)(?:開催場所|会場|場所|Venue)[：:\s]*([^\n]+?)$`), 0.95, "labeled venue"},
		{regexp.MustCompile(`(?m)([^\n:]*(?:ホール|会館|センター|展示場)[^\n:]*)$`), 0.5, "venue term line"},
	},
	"preferred_date": {
		{regexp.MustCompile(`(?m)(?:ご希望日|希望日|予約希望日|見学希望日|訪問希望日)[：:\s]*([^\n]+?)$`), 0.95, "labeled preferred date"},
		{regexp.MustCompile(`(?m)第[1１一]希望[：:\s]*([^\n]+?)$`), 0.85, "first choice label"},
	},
	"preferred_time": {
		{regexp.MustCompile(`(?m)(?:ご希望時間|希望時間|見学希望時間|訪問希望時間)[：:\s]*([^\n]+?)$`), 0.95, "labeled preferred time"},
		{regexp.MustCompile(`(?m)都合の良い時間[：:\s]*([^\n]+?)$`), 0.8, "convenient time label"},
	},
	"inquiry_text": {
		{regexp.MustCompile(`(?si)(?:お問い合わせ内容|お問合せ内容|ご質問|相談内容|Inquiry)[：:\s]*(.+?)(?:\n\n|\z)`), 0.95, "labeled inquiry"},
		{regexp.MustCompile(`(?s)(?:メッセージ|ご要望)[：:\s]*(.+?)(?:\n\n|\z)`), 0.8, "message label"},
	},
	"inquiry_source": {
		{regexp.MustCompile(`(?m)(?:お問い合わせのきっかけ|きっかけ)[：:\s]*([^\n]+?)$`), 0.95, "labeled source"},
		{regexp.MustCompile(`(?m)(?:媒体|メディア)[：:\s]*([^\n]+?)$`), 0.8, "media label"},
	},
	"budget_monthly": {
		{regexp.MustCompile(`(?m)(?:希望返済額|月々の返済額|月額)[：:\s]*([^\n]+?)$`), 0.95, "labeled monthly budget"},
		{regexp.MustCompile(`(\d+(?:\.\d+)?万円?)\s*(?:/月|毎月)`), 0.65, "per-month amount"},
	},
	"monthly_rent": {
		{regexp.MustCompile(`(?m)(?:月々の家賃|現在の家賃|家賃|賃料)[：:\s]*([^\n]+?)$`), 0.95, "labeled rent"},
	},
	"property_name": {
		{regexp.MustCompile(`(?mi)(?:物件名|建物名|Property)[：:\s]*([^\n]+?)$`), 0.95, "labeled property"},
		{regexp.MustCompile(`(?m)(?:マンション名|アパート名)[：:\s]*([^\n]+?)$`), 0.9, "building name label"},
		{regexp.MustCompile(`(?m)([^\s\n:]+(?:レジデンス|ハイツ|コーポ|パレス))(?:\s|$)`), 0.5, "building suffix"},
	},
	"property_type": {
		{regexp.MustCompile(`(?m)(?:物件種別|建物種別|種別)[：:\s]*([^\n]+?)$`), 0.95, "labeled type"},
		{regexp.MustCompile(`((?:分譲|賃貸)?(?:マンション|アパート|一戸建て|戸建|土地))(?:\s|$)`), 0.5, "type term"},
	},
	"price": {
		{regexp.MustCompile(`(?mi)(?:販売価格|価格|金額|Price)[：:\s]*([^\n]+?)$`), 0.95, "labeled price"},
		{regexp.MustCompile(`(\d+(?:,\d{3})+万?円)`), 0.7, "comma amount"},
		{regexp.MustCompile(`(\d+(?:億\d*)?(?:万|千万)円)`), 0.65, "jp amount"},
	},
	"room_layout": {
		{regexp.MustCompile(`(?m)(?:間取り?|Layout)[：:\s]*([^\n]+?)$`), 0.9, "labeled layout"},
		{regexp.MustCompile(`\b([1-9][SLDK]{1,4}(?:\+[SLDK])?)\b`), 0.6, "ldk code"},
	},
	"url": {
		{regexp.MustCompile(`(?i)(?:URL|Link)[：:\s]*(https?://[^\s\n]+)`), 0.95, "labeled url"},
		{regexp.MustCompile(`(https?://[^\s\n]+)`), 0.8, "bare url"},
		{regexp.MustCompile(`(www\.[^\s\n]+)`), 0.6, "www host"},
		{regexp.MustCompile(`(?m)([a-zA-Z0-9][a-zA-Z0-9-]*(?:\.[a-zA-Z0-9-]+)*\.(?:com|co\.jp|jp|net|org)/[^\s]*)`), 0.5, "bare domain path"},
	},
}

// contextKeywords boost a candidate when field-relevant vocabulary
// appears near the match position, disambiguating bare patterns that
// could belong to several fields (a 7-digit group is a postal code only
// if the neighbourhood talks about addresses).
var contextKeywords = map[string][]string{
	"name":           {"お客様", "様", "氏名", "ご本人"},
	"furigana":       {"カナ", "フリガナ", "ふりがな"},
	"email":          {"メール", "連絡", "mail", "アドレス"},
	"phone":          {"電話", "連絡", "tel", "携帯"},
	"age":            {"年齢", "歳", "才"},
	"postal_code":    {"郵便", "〒", "住所"},
	"address":        {"住所", "所在地", "エリア"},
	"company_name":   {"会社", "法人", "勤務"},
	"branch_name":    {"支店", "店舗", "営業所"},
	"event_name":     {"イベント", "開催", "セミナー"},
	"event_date":     {"開催", "日程", "イベント"},
	"event_time":     {"開催", "時間", "受付"},
	"event_place":    {"会場", "開催", "アクセス"},
	"preferred_date": {"希望", "予約", "見学"},
	"preferred_time": {"希望", "予約", "見学"},
	"inquiry_text":   {"問い合わせ", "質問", "相談"},
	"budget_monthly": {"返済", "予算", "ローン"},
	"monthly_rent":   {"家賃", "賃料"},
	"property_name":  {"物件", "建物"},
	"property_type":  {"物件", "種別"},
	"price":          {"価格", "物件", "販売"},
	"room_layout":    {"間取", "物件"},
	"url":            {"詳細", "物件", "url"},
}
