package stream

import (
	"errors"
	"strconv"
	"strings"
)

var ErrInvalidRange = errors.New("invalid range")

// Span 闭区间 [Start, End]
type Span struct {
	Start int64
	End   int64
}

func (s Span) Length() int64 {
	return s.End - s.Start + 1
}

// ParseRange 只接受单区间 bytes=<start>-[<end>], end 超出文件时截断到最后一个字节
func ParseRange(header string, size int64) (Span, error) {
	value, ok := strings.CutPrefix(header, "bytes=")
	if !ok {
		return Span{}, ErrInvalidRange
	}
	value = strings.TrimSpace(value)
	if strings.Contains(value, ",") {
		return Span{}, ErrInvalidRange
	}
	startStr, endStr, ok := strings.Cut(value, "-")
	if !ok {
		return Span{}, ErrInvalidRange
	}

	start, ok := parseOffset(strings.TrimSpace(startStr))
	if !ok {
		return Span{}, ErrInvalidRange
	}
	end := size - 1
	if endStr = strings.TrimSpace(endStr); endStr != "" {
		if end, ok = parseOffset(endStr); !ok {
			return Span{}, ErrInvalidRange
		}
		if end >= size {
			end = size - 1
		}
	}

	if start >= size || start > end {
		return Span{}, ErrInvalidRange
	}
	return Span{Start: start, End: end}, nil
}

func parseOffset(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
