// Package update_type_enum 定义学生内容更新指针的类型
package update_type_enum

const (
	Quiz      int8 = iota // 新测验
	Lms                   // LMS 课程资料
	CaProject             // 持续评估项目
)

// IsValid 检查更新类型是否在枚举范围内
func IsValid(t int8) bool {
	return t >= Quiz && t <= CaProject
}
