package message

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"hagwon/internal/attendance"
)

// StatusNotice composes the parent notification for one student's
// current-day attendance status. Wording and emoji match the notices
// the academy has been sending by hand.
func StatusNotice(studentName, date, status string, now time.Time) string {
	var b strings.Builder
	b.WriteString("[출결 알림]\n\n")
	fmt.Fprintf(&b, "안녕하세요, %s 학부모님.\n", studentName)
	fmt.Fprintf(&b, "%s %s 학생의 출결 현황 안내드립니다.\n\n", date, studentName)

	clock := now.Format("15:04")
	switch status {
	case attendance.StatusPresent:
		fmt.Fprintf(&b, "✅ 등원 완료 (%s)\n", clock)
		b.WriteString("오늘도 즐겁게 공부하고 안전하게 귀가하도록 지도하겠습니다.")
	case attendance.StatusLate:
		fmt.Fprintf(&b, "⚠️ 지각 (%s)\n", clock)
		b.WriteString("학생이 조금 늦게 등원하였습니다.")
	case attendance.StatusEarlyLeave:
		fmt.Fprintf(&b, "🏃 조퇴 (%s)\n", clock)
		b.WriteString("사정이 있어 일찍 귀가하였습니다.")
	case attendance.StatusAbsent:
		b.WriteString("❌ 결석\n")
		b.WriteString("금일 결석 처리되었습니다.")
	default:
		b.WriteString("❓ 미처리\n")
		b.WriteString("아직 출석 체크가 완료되지 않았습니다.")
	}
	return b.String()
}

// CheckInNotice is the short confirmation sent when a student checks in
// at the kiosk.
func CheckInNotice(studentName string) string {
	return studentName + " 학생이 등원하였습니다."
}

// JoinRecipients renders a phone list for the device's SMS composer.
func JoinRecipients(phones []string) string {
	return strings.Join(phones, ",")
}

// SMSLink builds an sms: URI carrying the recipients and body. iOS
// separates the body with '&' where everything else uses '?'.
func SMSLink(phones []string, body string, ios bool) string {
	sep := "?"
	if ios {
		sep = "&"
	}
	return "sms:" + JoinRecipients(phones) + sep + "body=" + url.QueryEscape(body)
}

// Bulk is a composed bulk notification ready for the OS hand-off.
type Bulk struct {
	Body       string   `json:"body"`
	Recipients string   `json:"recipients"`
	SMSLink    string   `json:"sms_link"`
	Names      []string `json:"names"`
}

// ComposeBulk pairs a message body with the selected parents' numbers.
// Delivery stays with the device; this only prepares the hand-off.
func ComposeBulk(body string, names, phones []string, ios bool) Bulk {
	return Bulk{
		Body:       body,
		Recipients: JoinRecipients(phones),
		SMSLink:    SMSLink(phones, body, ios),
		Names:      names,
	}
}
