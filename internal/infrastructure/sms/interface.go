package sms

// SmsService 短信服务接口
// 抽象短信发送操作，支持多种实现（阿里云、本地 mock 等）
// Service 层应依赖此接口而非具体实现
type SmsService interface {
	// SendVerificationCode 发送注册/登录验证码
	SendVerificationCode(telephone string) error
	// SendNoticeAlert 发送通知提醒短信
	// 警告/考勤类学生通知落库后触发，title 填入模板变量
	SendNoticeAlert(telephone string, title string) error
}
