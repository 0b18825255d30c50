package extraction

import "testing"

func TestRulesApplyInOrder(t *testing.T) {
	var calls []string
	rule := func(name, value string, ok bool) Rule {
		return func(_ []string, _ string) (string, bool) {
			calls = append(calls, name)
			return value, ok
		}
	}

	rules := Rules{rule("a", "", false), rule("b", "second", true), rule("c", "third", true)}
	if got := rules.Apply(nil, ""); got != "second" {
		t.Errorf("Expected %q, got %q", "second", got)
	}
	if len(calls) != 2 {
		t.Errorf("Expected rules after the first hit to be skipped, got calls %v", calls)
	}
	if got := (Rules{}).Apply(nil, "text"); got != "" {
		t.Errorf("Expected empty result for no rules, got %q", got)
	}
}

func TestFindAuthor(t *testing.T) {
	e := New(DefaultConfig())

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"vietnamese keyword", "MẮT BIẾC\nTác giả: Nguyễn Nhật Ánh", "Nguyễn Nhật Ánh"},
		{"truncates at conjunction", "Tác giả: Tô Hoài và Nam Cao", "Tô Hoài"},
		{"truncates at comma", "Author: John Smith, Jane Doe", "John Smith"},
		{"by keyword", "THE HOBBIT\nby J.R.R. Tolkien", "J.R.R. Tolkien"},
		{"written-by keyword", "TRUYỆN KIỀU\nviết bởi Nguyễn Du", "Nguyễn Du"},
		{"stops at run-on publisher keyword", "DAC NHAN TAM Tac gia: Dale Carnegie NXB: Tong Hop", "Dale Carnegie"},
		{"title case line", "DUNE\nFrank Herbert", "Frank Herbert"},
		{"single word line is not a name", "DUNE\nHerbert", ""},
		{"publisher line is not a name", "TITLE\nNhà Xuất Bản Trẻ", ""},
		{"caps only", "DUNE\nFRANK HERBERT", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.FindAuthor(Segment(tt.text).Lines, tt.text)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestFindAuthorWordBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AuthorMinWords = 3
	e := New(cfg)

	lines := []string{"DUNE", "Frank Herbert"}
	if got := e.FindAuthor(lines, "DUNE\nFrank Herbert"); got != "" {
		t.Errorf("Expected two-word line to be rejected, got %q", got)
	}
	lines = []string{"SAPIENS", "Yuval Noah Harari"}
	if got := e.FindAuthor(lines, "SAPIENS\nYuval Noah Harari"); got != "Yuval Noah Harari" {
		t.Errorf("Expected %q, got %q", "Yuval Noah Harari", got)
	}
}

func TestFindPublisher(t *testing.T) {
	e := New(DefaultConfig())

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"nxb prefix", "TITLE\nAuthor Name\nNXB Kim Đồng", "Kim Đồng"},
		{"full vietnamese prefix", "TITLE\nNhà xuất bản Trẻ\n2019", "Trẻ"},
		{"trailing suffix", "TITLE\nKim Đồng xuất bản\n2019", "Kim Đồng"},
		{"keyword mid line", "DAC NHAN TAM Tac gia: Dale Carnegie NXB: Tong Hop", "Tong Hop"},
		{"distributed-by pattern", "Phát hành bởi Alpha Books, 2019", "Alpha Books"},
		{"too short", "TITLE\nNXB\nSomeone Else", ""},
		{"none", "DUNE\nFrank Herbert", ""},
		{"year of publication is not a publisher", "TRUYỆN KIỀU\nNguyễn Du\nNăm xuất bản 2015", ""},
		{"publisher after year line", "TRUYỆN KIỀU\nNăm xuất bản 2015\nNXB Văn Học", "Văn Học"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.FindPublisher(Segment(tt.text).Lines, tt.text)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestFindYear(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"bare year", "NXB Kim Đồng\n2015", "2015"},
		{"keyword beats earlier bare year", "1999 edition, published in 2005", "2005"},
		{"vietnamese keyword", "Năm xuất bản: 2019", "2019"},
		{"out of range", "3050", ""},
		{"skips out of range", "in 1850 and 2001", "2001"},
		{"ignores digits inside isbn", "9780062316097", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindYear(tt.text)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestFindIsbn(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"hyphenated isbn-13", "ISBN: 978-0-13-235088-4", "9780132350884"},
		{"isbn-13 label", "ISBN-13: 9780062316097", "9780062316097"},
		{"isbn-10 with check letter", "ISBN-10: 080442957x", "080442957X"},
		{"hyphenated isbn-10", "isbn 0-306-40615-2 (2015)", "0306406152"},
		{"grouped", "Mã số 978-0062316097", "9780062316097"},
		{"bare", "Barcode 9780062316097 end", "9780062316097"},
		{"eleven digits are not an isbn-10", "ISBN 01323508821", ""},
		{"fourteen digits are not an isbn-13", "ISBN 97800623160971", ""},
		{"no isbn", "Call 12345", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindIsbn(tt.text)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestFindTitle(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"strips run-on fields", "DAC NHAN TAM Tac gia: Dale Carnegie NXB: Tong Hop", "DAC NHAN TAM"},
		{"skips emptied lines", "Tác giả: Tô Hoài\nDế Mèn Phiêu Lưu Ký", "Dế Mèn Phiêu Lưu Ký"},
		{"strips isbn", "ISBN 9780062316097\nSapiens", "Sapiens"},
		{"only field fragments", "NXB: Trẻ\nISBN 123", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindTitle(tt.text)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}
