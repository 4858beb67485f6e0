package jsonx

import "testing"

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare object",
			in:   `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "object wrapped in prose",
			in:   "Sure, here it is:\n{\"a\":1}\nHope that helps.",
			want: `{"a":1}`,
		},
		{
			name: "code fence",
			in:   "```json\n{\"a\":1}\n```",
			want: `{"a":1}`,
		},
		{
			name: "nested objects balanced",
			in:   `{"a":{"b":2}} trailing`,
			want: `{"a":{"b":2}}`,
		},
		{
			name: "brace inside string ignored",
			in:   `{"a":"closing } brace"}`,
			want: `{"a":"closing } brace"}`,
		},
		{
			name: "escaped quote inside string",
			in:   `{"a":"say \"hi\" {"} rest`,
			want: `{"a":"say \"hi\" {"}`,
		},
		{
			name: "no object returns input",
			in:   "plain text",
			want: "plain text",
		},
		{
			name: "unterminated object returns tail",
			in:   `prefix {"a":1`,
			want: `{"a":1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractObject(tt.in); got != tt.want {
				t.Errorf("ExtractObject(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
