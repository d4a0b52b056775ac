package contact_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/leadnest/leadnest-api/internal/domain/contact"
)

func TestStaticRevealerEmail(t *testing.T) {
	revealer := contact.NewStaticRevealer()

	cases := []struct {
		name string
		data *contact.ContactData
		want string
	}{
		{
			name: "name and company",
			data: &contact.ContactData{Name: "Jane Doe", Company: "Acme Inc"},
			want: "jane.doe@acme.com",
		},
		{
			name: "company suffix stripped",
			data: &contact.ContactData{Name: "Bob Smith", Company: "Widgets, LLC"},
			want: "bob.smith@widgets.com",
		},
		{
			name: "single name",
			data: &contact.ContactData{Name: "Prince", Company: "Paisley Park"},
			want: "prince@paisleypark.com",
		},
		{
			name: "middle name dropped",
			data: &contact.ContactData{Name: "Ana Maria Silva", Company: "Datalog"},
			want: "ana.silva@datalog.com",
		},
		{
			name: "missing metadata",
			data: nil,
			want: "contact@example.com",
		},
		{
			name: "missing company",
			data: &contact.ContactData{Name: "Jane Doe"},
			want: "contact@example.com",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := revealer.Reveal(context.Background(), "c-1", contact.FieldEmail, tc.data)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

var phonePattern = regexp.MustCompile(`^\+1 \(\d{3}\) \d{3}-\d{4}$`)

func TestStaticRevealerPhone(t *testing.T) {
	revealer := contact.NewStaticRevealer()

	first, err := revealer.Reveal(context.Background(), "contact-77", contact.FieldPhone, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !phonePattern.MatchString(first) {
		t.Fatalf("phone %q does not match expected format", first)
	}

	// Same contact reveals the same number, other contacts differ.
	second, err := revealer.Reveal(context.Background(), "contact-77", contact.FieldPhone, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("phone reveal not deterministic: %q vs %q", first, second)
	}

	other, err := revealer.Reveal(context.Background(), "contact-78", contact.FieldPhone, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other == first {
		t.Fatalf("distinct contacts got the same phone %q", first)
	}
}
