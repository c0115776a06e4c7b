package gemini

import "testing"

func TestParseQuestionList(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "numbered list with heading",
			raw:  "# Technical Questions\n\n1. How do you test your code?\n2. Describe a hard bug.\n",
			want: []string{"How do you test your code?", "Describe a hard bug."},
		},
		{
			name: "bulleted list",
			raw:  "- First question?\n• Second question?\n* Third question?",
			want: []string{"First question?", "Second question?", "Third question?"},
		},
		{
			name: "numbers with parenthesis",
			raw:  "1) One?\n2) Two?",
			want: []string{"One?", "Two?"},
		},
		{
			name: "commentary lines ignored",
			raw:  "Here are some questions:\n1. Real question?\nHope these help!",
			want: []string{"Real question?"},
		},
		{
			name: "blank markers dropped",
			raw:  "1.\n2. Kept?",
			want: []string{"Kept?"},
		},
		{
			name: "empty input",
			raw:  "",
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ParseQuestionList(tc.raw)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d questions %v, want %d %v", len(got), got, len(tc.want), tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("question %d: got %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}
