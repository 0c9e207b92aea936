package safety

import "testing"

func TestIsSafeToSearch(t *testing.T) {
	cases := []struct {
		q    string
		want bool
	}{
		{"what is the latest inflation rate", true},
		{"what is my card number", false},
		{"What Is My CARD NUMBER", false},
		{"i forgot my password for the bank", false},
		{"is my ssn exposed", false},
		{"what is the pin bar pattern", false}, // substring match, false positives accepted
		{"how are markets doing", true},
		{"", true},
	}
	for _, c := range cases {
		if got := IsSafeToSearch(c.q); got != c.want {
			t.Errorf("IsSafeToSearch(%q) = %v, want %v", c.q, got, c.want)
		}
	}
}

func TestShouldSearch(t *testing.T) {
	cases := []struct {
		q    string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"any news on tech stocks", true},
		{"what is the LATEST bitcoin price", true},
		{"what is an index fund", true},
		{"help me plan my budget", false},
		{"thanks!", false},
	}
	for _, c := range cases {
		if got := ShouldSearch(c.q); got != c.want {
			t.Errorf("ShouldSearch(%q) = %v, want %v", c.q, got, c.want)
		}
	}
}
