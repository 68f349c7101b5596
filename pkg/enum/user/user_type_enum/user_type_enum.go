// Package user_type_enum 定义用户角色类型
package user_type_enum

const (
	Admin   int8 = iota // 管理员
	Teacher             // 教师
	Student             // 学生
)
