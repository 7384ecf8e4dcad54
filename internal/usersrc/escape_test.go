package usersrc

import "testing"

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "/usr/bin:/bin", "/usr/bin:/bin"},
		{"ampersand", "a && b", "a &amp;&amp; b"},
		{"angle brackets", "cat <in >out", "cat &lt;in &gt;out"},
		{"double quote", `echo "hi"`, "echo &quot;hi&quot;"},
		{"single quote kept", "echo 'hi'", "echo 'hi'"},
		{"entity not double-escaped once", "&amp;", "&amp;amp;"},
		{"newline", "a\nb", "a&#xA;b"},
		{"carriage return", "a\r\nb", "a&#xD;&#xA;b"},
		{"tab kept", "a\tb", "a\tb"},
		{"control character", "a\x01b", "a�b"},
		{"invalid utf-8", "a\xffb", "a�b"},
		{"non-ascii kept", "Grüße €", "Grüße €"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.in); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
