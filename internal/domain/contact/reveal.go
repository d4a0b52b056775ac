package contact

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
)

// RevealProvider produces the actual contact field value once payment is
// authorized. Treated as a black box that may fail independently of the
// ledger; a failure after debit rolls the debit back.
type RevealProvider interface {
	Reveal(ctx context.Context, contactID string, field FieldType, data *ContactData) (string, error)
}

// StaticRevealer formats contact values from the supplied metadata without
// calling an enrichment vendor. Output is deterministic per contact so a
// repeated unlock returns the same value.
type StaticRevealer struct{}

func NewStaticRevealer() *StaticRevealer {
	return &StaticRevealer{}
}

func (s *StaticRevealer) Reveal(_ context.Context, contactID string, field FieldType, data *ContactData) (string, error) {
	if field == FieldPhone {
		return formatPhone(contactID), nil
	}
	return formatEmail(data), nil
}

func formatEmail(data *ContactData) string {
	if data == nil || data.Name == "" || data.Company == "" {
		return "contact@example.com"
	}

	parts := strings.Fields(strings.ToLower(data.Name))
	local := parts[0]
	if len(parts) > 1 {
		local += "." + parts[len(parts)-1]
	}

	domain := strings.ToLower(data.Company)
	domain = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, domain)
	for _, suffix := range []string{"inc", "corp", "llc", "ltd"} {
		domain = strings.ReplaceAll(domain, suffix, "")
	}
	if domain == "" {
		return "contact@example.com"
	}

	return local + "@" + domain + ".com"
}

func formatPhone(contactID string) string {
	h := fnv.New64a()
	h.Write([]byte(contactID))
	sum := h.Sum64()

	areaCode := 100 + sum%900
	exchange := 100 + (sum/900)%900
	number := 1000 + (sum/810000)%9000

	return fmt.Sprintf("+1 (%d) %d-%d", areaCode, exchange, number)
}
