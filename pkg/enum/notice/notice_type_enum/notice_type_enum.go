// Package notice_type_enum 定义学生通知的类型
package notice_type_enum

const (
	Info        int8 = iota // 普通通知
	Warning                 // 警告（如迟交作业）
	Attendance              // 考勤相关
	Achievement             // 成就/表扬
)

// IsValid 检查通知类型是否在枚举范围内
func IsValid(t int8) bool {
	return t >= Info && t <= Achievement
}

// NeedSmsAlert 警告与考勤类通知需要触发短信提醒
func NeedSmsAlert(t int8) bool {
	return t == Warning || t == Attendance
}
