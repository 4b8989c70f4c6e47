package model

// IntPtr 将 int 转换为 *int
func IntPtr(i int) *int {
	return &i
}

// StrPtr 将 string 转换为 *string
func StrPtr(s string) *string {
	return &s
}

// StrVal 安全地从 *string 获取值，如果为 nil 返回空字符串
func StrVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
