package record

import (
	"strings"
	"time"

	"github.com/sawadari/hankyo/internal/types"
)

// Envelope describes the message the fields came from.
type Envelope struct {
	MessageID string
	Sender    string
	Subject   string
	Date      string
	Received  time.Time
	Elapsed   time.Duration
}

// slots maps an extracted field name to every record position it fills.
// Several fields land in more than one section, mirroring how the
// consumers read the payload (a company name is both the sender company
// and the listing company).
var slots = map[string][]func(*Record, string){
	"name":     {func(r *Record, v string) { r.CustomerInfo[0].Name = v }},
	"furigana": {func(r *Record, v string) { r.CustomerInfo[0].Furigana = v }},
	"email":    {func(r *Record, v string) { r.CustomerInfo[0].Email = v }},
	"phone":    {func(r *Record, v string) { r.CustomerInfo[0].PhoneNumber = v }},
	"age": {func(r *Record, v string) {
		if !strings.HasSuffix(v, "歳") {
			v += "歳"
		}
		r.CustomerInfo[0].Age = v
	}},
	"postal_code": {func(r *Record, v string) {
		if !strings.HasPrefix(v, "〒") {
			v = "〒" + v
		}
		r.CustomerInfo[0].PostalCode = v
	}},
	"address": {func(r *Record, v string) { r.CustomerInfo[0].Address = v }},
	"company_name": {
		func(r *Record, v string) { r.CompanyInfo.CompanyName = v },
		func(r *Record, v string) { r.PropertyInfo.CompanyName = v },
	},
	"branch_name": {
		func(r *Record, v string) { r.CompanyInfo.BranchName = v },
		func(r *Record, v string) { r.PropertyInfo.BranchName = v },
	},
	"event_name": {func(r *Record, v string) { r.EventInfo.EventName = v }},
	"event_date": {func(r *Record, v string) { r.EventInfo.EventDate = v }},
	"event_time": {func(r *Record, v string) { r.EventInfo.EventTime = v }},
	"event_place": {
		func(r *Record, v string) { r.EventInfo.EventPlace = v },
		func(r *Record, v string) { r.ReservationInfo[0].MeetingPlace = v },
	},
	"preferred_date": {func(r *Record, v string) { r.ReservationInfo[0].PreferredDate = v }},
	"preferred_time": {func(r *Record, v string) { r.ReservationInfo[0].PreferredTime = v }},
	"inquiry_text": {
		func(r *Record, v string) { r.InquiryInfo.InquiryText = v },
		func(r *Record, v string) { r.CustomerInfo[0].Comments = v },
	},
	"inquiry_source": {
		func(r *Record, v string) { r.InquiryInfo.InquirySource = v },
		func(r *Record, v string) { r.CustomerInfo[0].RegistrationReason = v },
	},
	"budget_monthly": {
		func(r *Record, v string) { r.CustomerInfo[0].MonthlyPayment = v },
		func(r *Record, v string) { r.SurveyInfo.BudgetMonthly = v },
	},
	"monthly_rent": {func(r *Record, v string) { r.CustomerInfo[0].MonthlyRent = v }},
	"property_name": {
		func(r *Record, v string) { r.PropertyInfo.PropertyName = v },
		func(r *Record, v string) { r.ReservationInfo[0].PropertyName = v },
	},
	"property_type": {
		func(r *Record, v string) { r.PropertyInfo.PropertyType = v },
		func(r *Record, v string) { r.ReservationInfo[0].PropertyType = v },
	},
	"price": {
		func(r *Record, v string) { r.PropertyInfo.Price = v },
		func(r *Record, v string) { r.ReservationInfo[0].Price = v },
	},
	"url": {
		func(r *Record, v string) { r.CompanyInfo.URL = v },
		func(r *Record, v string) { r.EventInfo.EventURL = v },
		func(r *Record, v string) { r.PropertyInfo.PropertyURL = v },
	},
	"room_layout": {func(r *Record, v string) { r.PropertyInfo.FloorPlan = v }},
}

// Assemble builds the canonical record from the message envelope and
// the extracted fields. Field names without a slot are ignored.
func Assemble(env Envelope, fields []types.ExtractedField) *Record {
	r := New()
	r.SenderEmail = env.Sender
	r.Timestamp = env.Date
	r.Subject = env.Subject
	r.CompanyInfo.ReceivedDatetime = env.Date
	r.CompanyInfo.ID = env.MessageID

	var confSum float64
	for _, f := range fields {
		confSum += f.Confidence
		for _, set := range slots[f.Name] {
			set(r, f.Value)
		}
	}

	r.ProcessingMeta.FieldCount = len(fields)
	if len(fields) > 0 {
		r.ProcessingMeta.MeanConfidence = confSum / float64(len(fields))
	}
	r.ProcessingMeta.ElapsedMs = env.Elapsed.Milliseconds()
	return r
}
