package utils

import (
	"fmt"
	"math"
	"runtime"
	"strconv"
	"strings"
)

// PanicTrace 格式化 panic 值和调用栈, skip 跳过调用方自身的栈帧
func PanicTrace(err any, skip int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "panic: %v\n", err)

	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", f.Function, f.File, f.Line)
		if !more {
			break
		}
	}
	return b.String()
}

// ParseID 解析路径中的 ID, 非法或为 0 时 ok=false
func ParseID(s string) (uint64, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// Page 解析分页参数, 非法值回落到默认值. page 上限保证 (page-1)*limit 不溢出 int32
func Page(pageStr, limitStr string, defLimit, maxLimit int) (page, limit int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = defLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if maxPage := math.MaxInt32/limit + 1; page > maxPage {
		page = maxPage
	}
	return page, limit
}
