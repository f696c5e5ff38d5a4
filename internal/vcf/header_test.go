package vcf

import "testing"

func TestIsHeaderLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"meta line", "##fileformat=VCFv4.1", true},
		{"column line", "#CHROM\tPOS\tID", true},
		{"data line", "1\t100\trs1\tA\tG", false},
		{"hash inside data", "1\t100\t#1\tA\tG", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHeaderLine(tt.line); got != tt.want {
				t.Errorf("IsHeaderLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestHasFileFormat(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"##fileformat=VCFv4.1", true},
		{"##fileformat=VCFv4.2", true},
		{"##fileformat=VCFv3.3", false},
		{"##fileDate=2021-01-15", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := HasFileFormat(tt.line); got != tt.want {
				t.Errorf("HasFileFormat(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestDirectiveValue(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		directive string
		want      string
		ok        bool
	}{
		{"reference", "##reference=GRCh37", ReferenceDirective, "GRCh37", true},
		{"file date", "##fileDate=2021-01-15", FileDateDirective, "2021-01-15", true},
		{"trailing newline", "##reference=GRCh38\n", ReferenceDirective, "GRCh38", true},
		{"other directive", "##source=ClinVar", ReferenceDirective, "", false},
		{"info mentioning reference", `##INFO=<ID=X,Description="reference">`, ReferenceDirective, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DirectiveValue(tt.line, tt.directive)
			if ok != tt.ok || got != tt.want {
				t.Errorf("DirectiveValue(%q) = %q, %v; want %q, %v", tt.line, got, ok, tt.want, tt.ok)
			}
		})
	}
}
