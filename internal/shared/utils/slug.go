package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9-]+`)
	repeatedHyphen = regexp.MustCompile(`-+`)

	// đ/Đ không decompose qua NFD nên map tay
	strokeReplacer = strings.NewReplacer("đ", "d", "Đ", "D", "ł", "l", "Ł", "L", "ø", "o", "Ø", "O")
)

// GenerateSlug: "Nguyễn Nhật Ánh" -> "nguyen-nhat-anh"
func GenerateSlug(input string) string {
	ascii := RemoveDiacritics(input)
	lower := strings.ToLower(ascii)
	hyphenated := strings.Join(strings.Fields(lower), "-")
	hyphenated = strings.ReplaceAll(hyphenated, "_", "-")
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "")
	normalized := repeatedHyphen.ReplaceAllString(cleaned, "-")
	return strings.Trim(normalized, "-")
}

// RemoveDiacritics strips combining marks (tất cả các tone của "a" => "a")
func RemoveDiacritics(input string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strokeReplacer.Replace(input))
	if err != nil {
		return input
	}
	return out
}

// NormalizeTags slugifies tags, drops empties and duplicates, keeps first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		slug := GenerateSlug(tag)
		if slug == "" {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		out = append(out, slug)
	}
	return out
}
