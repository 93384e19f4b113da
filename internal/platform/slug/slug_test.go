package slug

import "testing"

func TestMake(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Arsenal", "arsenal"},
		{"spaces", "Manchester United", "manchester-united"},
		{"accents", "Saint-Étienne", "saint-etienne"},
		{"umlaut", "1. FC Köln", "1-fc-koln"},
		{"cedilla", "Beşiktaş", "besiktas"},
		{"ligature", "Kjærgaard", "kjaergaard"},
		{"eszett", "Großaspach", "grossaspach"},
		{"stroke", "Bodø/Glimt", "bodo-glimt"},
		{"punctuation runs", "West Ham -- United!!", "west-ham-united"},
		{"leading trailing", "  ***Real Madrid***  ", "real-madrid"},
		{"digits kept", "Schalke 04", "schalke-04"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Make(tc.in, FallbackTeam); got != tc.want {
				t.Errorf("Make(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestMakeFallbacks(t *testing.T) {
	t.Parallel()

	if got := Make("", FallbackTeam); got != "n-a" {
		t.Errorf("empty team name = %q, want n-a", got)
	}
	if got := Make("***", FallbackPlayer); got != "player" {
		t.Errorf("symbol-only player name = %q, want player", got)
	}
}

func TestMakeIdempotent(t *testing.T) {
	t.Parallel()

	once := Make("Saint-Étienne FC", FallbackTeam)
	if twice := Make(once, FallbackTeam); twice != once {
		t.Errorf("Make not idempotent: %q then %q", once, twice)
	}
}

func TestMakeSalted(t *testing.T) {
	t.Parallel()

	if got := MakeSalted("Kylian Mbappé", 91); got != "kylian-mbappe-91" {
		t.Errorf("MakeSalted = %q", got)
	}
	if got := MakeSalted("", 70); got != "player-70" {
		t.Errorf("MakeSalted empty = %q", got)
	}
}
