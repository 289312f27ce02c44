// Package record assembles extracted fields into the canonical inquiry
// record every webhook consumer receives. The JSON keys are fixed
// bilingual identifiers; consumers match on them byte for byte, so the
// tags here never change shape regardless of which fields an email
// yielded.
package record

// Record is the canonical webhook payload. Every section is always
// present; empty strings mean the field was not extracted.
type Record struct {
	SenderEmail     string              `json:"sender_email(送信元メールアドレス)"`
	Timestamp       string              `json:"timestamp(タイムスタンプ)"`
	Subject         string              `json:"subject(件名)"`
	CompanyInfo     CompanyInfo         `json:"company_info(会社情報)"`
	StaffInfo       StaffInfo           `json:"staff_info(担当者情報)"`
	EventInfo       EventInfo           `json:"event_info(イベント情報)"`
	ReservationInfo []ReservationInfo   `json:"reservation_info(ご予約情報)"`
	DocumentRequest DocumentRequestInfo `json:"document_request_info(資料請求情報)"`
	InquiryInfo     InquiryInfo         `json:"inquiry_info(お問い合わせ内容)"`
	SurveyInfo      SurveyInfo          `json:"survey_info(アンケート情報)"`
	PropertyInfo    PropertyInfo        `json:"property_info(物件情報)"`
	CustomerInfo    []CustomerInfo      `json:"customer_info(お客様情報)"`
	HousingPrefs    HousingPreferences  `json:"housing_preferences(希望条件情報)"`
	ProcessingMeta  ProcessingMeta      `json:"processing_meta"`
}

// ProcessingMeta describes how the record was produced. Unlike the
// bilingual sections it is consumed by monitoring, not the CRM import.
type ProcessingMeta struct {
	MeanConfidence float64 `json:"mean_confidence"`
	FieldCount     int     `json:"field_count"`
	ElapsedMs      int64   `json:"elapsed_ms"`
}

type CompanyInfo struct {
	CompanyName      string `json:"company_name(会社名)"`
	BranchName       string `json:"branch_name(支店名)"`
	ReceivedDatetime string `json:"received_datetime(受信日時)"`
	ID               string `json:"id(ＩＤ)"`
	SerialNumber     string `json:"serial_number(連番)"`
	ContactDatetime  string `json:"contact_datetime(お問合せ日時)"`
	ContactPlan      string `json:"contact_plan(お問合せ企画)"`
	DeliveryType     string `json:"delivery_type(反響送付先区分)"`
	DeliveryCode     string `json:"delivery_code(反響送付先コード)"`
	URL              string `json:"url(URL)"`
}

type StaffInfo struct {
	StaffInCharge  string `json:"staff_in_charge(担当)"`
	Status         string `json:"status(ステータス)"`
	OccurrenceType string `json:"occurrence_type(発生区分)"`
}

type EventInfo struct {
	EventName  string `json:"event_name(イベント名)"`
	EventDate  string `json:"event_date(開催日)"`
	EventTime  string `json:"event_time(時間)"`
	EventPlace string `json:"event_place(会場)"`
	EventURL   string `json:"event_url(URL)"`
}

type ReservationInfo struct {
	PreferredDate       string `json:"preferred_date(ご希望日)"`
	PreferredTime       string `json:"preferred_time(ご希望時間)"`
	ReservationStatus   string `json:"reservation_status(予約状況)"`
	MeetingPlace        string `json:"meeting_place(集合場所)"`
	ReservationID       string `json:"reservation_id(予約ID)"`
	PropertyType        string `json:"property_type(物件種別)"`
	PropertyCode        string `json:"property_code(物件コード)"`
	PropertyName        string `json:"property_name(物件名)"`
	CompanyPropertyCode string `json:"company_property_code(貴社物件コード)"`
	Location            string `json:"location(所在地)"`
	Price               string `json:"price(価格)"`
	PropertyURL         string `json:"property_url(物件詳細画面)"`
}

type DocumentRequestInfo struct {
	RequestedBooklets   string   `json:"requested_booklets(ご希望の冊子)"`
	RequestedProperties []string `json:"requested_properties(資料請求物件情報)"`
}

type InquiryInfo struct {
	InquiryText   string `json:"inquiry_text(お問い合わせ内容)"`
	InquirySource string `json:"inquiry_source(お問い合わせのきっかけ)"`
}

type SurveyInfo struct {
	PreferredArea string `json:"preferred_area(ご希望エリア)"`
	RailwayLine   string `json:"railway_line(沿線)"`
	OtherRequests string `json:"other_requests(その他ご要望)"`
	SchoolDistr   string `json:"school_district(学校区)"`
	ParkingSpaces string `json:"parking_spaces(駐車場台数)"`
	Floors        string `json:"floors(階数)"`
	BudgetTotal   string `json:"budget_total(総予算)"`
	BudgetMonthly string `json:"budget_monthly(希望返済額)"`
}

type PropertyInfo struct {
	CompanyName         string `json:"company_name(会社名)"`
	BranchName          string `json:"branch_name(支店名)"`
	Issue               string `json:"issue(掲載号)"`
	PropertyType        string `json:"property_type(物件種別)"`
	PropertyCode        string `json:"property_code(物件コード)"`
	PropertyName        string `json:"property_name(物件名)"`
	CompanyPropertyCode string `json:"company_property_code(貴社物件コード)"`
	NearestStation      string `json:"nearest_station(最寄り駅)"`
	BusWalk             string `json:"bus_walk(バス／歩)"`
	Location            string `json:"location(所在地)"`
	Price               string `json:"price(価格)"`
	LandArea            string `json:"land_area(土地面積)"`
	BuildingArea        string `json:"building_area(建物面積)"`
	PropertyURL         string `json:"property_url(物件詳細画面)"`
	FloorPlan           string `json:"floor_plan(間取り)"`
	Age                 string `json:"age(築年数)"`
	OtherPRPoints       string `json:"other_pr_points(その他PRポイント)"`
}

type CustomerInfo struct {
	Name               string `json:"name(お名前)"`
	Furigana           string `json:"furigana(フリガナ)"`
	Email              string `json:"email(メールアドレス)"`
	PhoneNumber        string `json:"phone_number(電話番号)"`
	PhoneNumber2       string `json:"phone_number2(電話番号2)"`
	FaxNumber          string `json:"fax_number(FAX番号)"`
	Age                string `json:"age(年齢)"`
	PostalCode         string `json:"postal_code(郵便番号)"`
	Address            string `json:"address(ご住所)"`
	MonthlyRent        string `json:"monthly_rent(月々の家賃)"`
	MonthlyPayment     string `json:"monthly_payment(月々の返済額)"`
	PreferredArea      string `json:"preferred_area(希望エリア)"`
	RegistrationReason string `json:"registration_reason(会員登録のきっかけ)"`
	PreferredContact   string `json:"preferred_contact_method(希望連絡方法)"`
	NewsletterOptIn    string `json:"newsletter_opt_in(お知らせメール希望)"`
	Comments           string `json:"comments(ご意見・ご質問等)"`
}

type HousingPreferences struct {
	Mansion MansionPreferences `json:"mansion_preferences(マンション希望条件情報)"`
	House   HousePreferences   `json:"house_preferences(一戸建て希望条件情報)"`
}

type MansionPreferences struct {
	PreferredArea   string `json:"preferred_area(希望エリア)"`
	SchoolDistrict  string `json:"school_district(希望校区)"`
	PriceRange      string `json:"price_range(希望価格)"`
	FloorPlan       string `json:"floor_plan(希望間取り)"`
	ExclusiveArea   string `json:"exclusive_area(希望専有面積)"`
	PetAllowed      string `json:"pet_allowed(ペット可物件希望)"`
	OtherConditions string `json:"other_conditions(その他希望条件)"`
}

type HousePreferences struct {
	PreferredArea   string `json:"preferred_area(希望エリア)"`
	SchoolDistrict  string `json:"school_district(希望校区)"`
	PriceRange      string `json:"price_range(希望価格)"`
	FloorPlan       string `json:"floor_plan(希望間取り)"`
	LandArea        string `json:"land_area(希望土地面積)"`
	BuildingArea    string `json:"building_area(希望建物面積)"`
	OtherConditions string `json:"other_conditions(その他希望条件)"`
}

// New returns a record with the single reservation and customer rows
// the payload always carries and empty array slots otherwise.
func New() *Record {
	return &Record{
		ReservationInfo: []ReservationInfo{{}},
		CustomerInfo:    []CustomerInfo{{}},
		DocumentRequest: DocumentRequestInfo{RequestedProperties: []string{}},
	}
}
