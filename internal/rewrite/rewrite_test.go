package rewrite

import "testing"

func TestRule_Apply(t *testing.T) {
	tests := []struct {
		name    string
		rule    Rule
		url     string
		want    string
		matched bool
	}{
		{
			name:    "instagram post",
			rule:    Instagram,
			url:     "https://instagram.com/p/abc",
			want:    "https://kkinstagram.com/p/abc",
			matched: true,
		},
		{
			name:    "instagram with www",
			rule:    Instagram,
			url:     "https://www.instagram.com/reel/xyz/",
			want:    "https://www.kkinstagram.com/reel/xyz/",
			matched: true,
		},
		{
			name:    "instagram rule rejects reddit",
			rule:    Instagram,
			url:     "https://reddit.com/r/x",
			matched: false,
		},
		{
			name:    "reddit post",
			rule:    Reddit,
			url:     "https://reddit.com/r/x",
			want:    "https://rxddit.com/r/x",
			matched: true,
		},
		{
			name:    "reddit with www and path",
			rule:    Reddit,
			url:     "https://www.reddit.com/r/golang/comments/1abc/title/",
			want:    "https://www.rxddit.com/r/golang/comments/1abc/title/",
			matched: true,
		},
		{
			name:    "reddit rule rejects instagram",
			rule:    Reddit,
			url:     "https://instagram.com/p/abc",
			matched: false,
		},
		{
			name:    "garbage input",
			rule:    Reddit,
			url:     "not a url at all",
			matched: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.rule.Apply(tt.url)
			if ok != tt.matched {
				t.Fatalf("Apply(%q) matched = %v, want %v", tt.url, ok, tt.matched)
			}
			if ok && got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestSuppressPreviews(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "empty text",
			text: "",
			want: "",
		},
		{
			name: "no URLs is identity",
			text: "hola, esto no tiene links",
			want: "hola, esto no tiene links",
		},
		{
			name: "single URL",
			text: "https://example.com/a",
			want: "<https://example.com/a>",
		},
		{
			name: "URL inside text keeps surroundings intact",
			text: "mirá https://example.com/a ahora",
			want: "mirá <https://example.com/a> ahora",
		},
		{
			name: "multiple URLs",
			text: "https://a.com y http://b.com/c?d=1",
			want: "<https://a.com> y <http://b.com/c?d=1>",
		},
		{
			name: "already wrapped URL is not matched through brackets",
			text: "mirá <https://example.com/a> ahora",
			want: "mirá <<https://example.com/a>> ahora",
		},
		{
			name: "non-http scheme untouched",
			text: "ftp://example.com/a",
			want: "ftp://example.com/a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuppressPreviews(tt.text); got != tt.want {
				t.Errorf("SuppressPreviews(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
