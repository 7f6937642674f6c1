package bot

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// fmtUAH renders an amount the way the group is used to seeing it:
// space-grouped thousands, comma decimal, trailing zeros trimmed, e.g.
// "1 234,5 ₴".
func fmtUAH(d decimal.Decimal) string {
	s := d.Round(2).StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(intPart[i])
	}
	frac = strings.TrimRight(frac, "0")
	if frac != "" {
		b.WriteByte(',')
		b.WriteString(frac)
	}
	b.WriteString(" ₴")
	return b.String()
}

// displayName picks @username, else first name, else the bare id.
func displayName(username, firstName *string, userID int64) string {
	if username != nil && *username != "" {
		return "@" + *username
	}
	if firstName != nil && *firstName != "" {
		return *firstName
	}
	return strconv.FormatInt(userID, 10)
}

func (h *Handler) formatTimeLocal(t time.Time) string {
	return t.In(h.loc).Format("02.01 15:04")
}
