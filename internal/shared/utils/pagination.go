package utils

import (
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page là limit/offset đơn giản, echo lại trong response meta
type Page struct {
	Limit  int
	Offset int
}

// ParsePage đọc ?limit=&offset=; giá trị sai hoặc vượt ngưỡng bị clamp
func ParsePage(limitStr, offsetStr string) Page {
	p := Page{Limit: DefaultLimit}
	if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
		p.Limit = n
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if n, err := strconv.Atoi(offsetStr); err == nil && n > 0 {
		p.Offset = n
	}
	return p
}
