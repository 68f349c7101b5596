package constants

import "time"

const (
	CHANNEL_SIZE  = 100 // 通道大小
	REDIS_TIMEOUT = 1   // redis timeout (分钟)

	// STUDENT_POLL_INTERVAL 学生端更新轮询间隔
	// 学生门户没有实时推送通道时，用固定间隔轮询代替
	STUDENT_POLL_INTERVAL = 30 * time.Second

	// BADGE_DISPLAY_MAX 角标显示上限，超过后显示 "9+"
	// 仅展示规则，底层计数保持精确
	BADGE_DISPLAY_MAX = 9

	// REPLY_SUBJECT_PREFIX 回复消息的主题前缀
	REPLY_SUBJECT_PREFIX = "Re: "

	// NO_SUBJECT_PLACEHOLDER 原消息无主题时回复使用的占位主题
	NO_SUBJECT_PLACEHOLDER = "No Subject"

	REFRESH_TOKEN_EXPIRY_HOURS = 168 // Refresh Token 有效期（小时），168小时 = 7天
)
