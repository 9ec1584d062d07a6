package patterns

import "testing"

func TestEmail_BasicMatch(t *testing.T) {
	html := `<p>Reach us at info@example.com or sales@sub.example.co.uk.</p>`
	got := Email.FindAllString(html, -1)
	if len(got) != 2 {
		t.Fatalf("expected 2 emails, got %d: %v", len(got), got)
	}
	if got[0] != "info@example.com" {
		t.Errorf("first match = %q, want info@example.com", got[0])
	}
}

func TestEmail_RejectsShortTLD(t *testing.T) {
	if Email.MatchString("user@host.x") {
		t.Error("single-letter TLD should not match")
	}
}

func TestPhone_MatchesCommonShapes(t *testing.T) {
	inputs := []string{
		"+1 (555) 123-4567",
		"020 7946 0958",
		"555.123.4567",
	}
	for _, in := range inputs {
		if !Phone.MatchString(in) {
			t.Errorf("Phone did not match %q", in)
		}
	}
}

func TestPhone_RejectsShortRuns(t *testing.T) {
	if Phone.MatchString("12345") {
		t.Error("5-digit run should not match the phone shape")
	}
}

func TestIsDateLike(t *testing.T) {
	dateLike := []string{"2023-05-01", "2023/05/01", "2023-05", "2023/05", "2023", "2023 - 05 - 01"}
	for _, s := range dateLike {
		if !IsDateLike(s) {
			t.Errorf("IsDateLike(%q) = false, want true", s)
		}
	}

	notDateLike := []string{"+1 555 123 4567", "555-1234", "2023-05-01 10:30:00", "20230501", "abcd"}
	for _, s := range notDateLike {
		if IsDateLike(s) {
			t.Errorf("IsDateLike(%q) = true, want false", s)
		}
	}
}

func TestSocial_CapturesProfilePath(t *testing.T) {
	link := `https://www.facebook.com/acme.corp?ref=footer`
	m := Social["facebook"].FindString(link)
	if m != "facebook.com/acme.corp?ref=footer" {
		t.Errorf("facebook match = %q", m)
	}

	if Social["linkedin"].MatchString("https://linkedin.com/") {
		t.Error("bare platform root should not match")
	}
}
