package respond

import (
	"strconv"

	"campus_msg_server/pkg/constants"
)

// BadgeRespond 未读角标响应，Display 在超过上限时显示为 "9+"
// 使用位置:
//   - internal/service/directed/service.go: Badge
//   - internal/service/notice/service.go: Badge
//   - internal/service/feed/service.go: Badge
type BadgeRespond struct {
	Count   int64  `json:"count"`
	Display string `json:"display"`
}

// NewBadgeRespond 按展示规则构造角标
// Count 保持精确计数，Display 超过上限截断为 "9+"
func NewBadgeRespond(count int64) BadgeRespond {
	display := strconv.FormatInt(count, 10)
	if count > constants.BADGE_DISPLAY_MAX {
		display = strconv.Itoa(constants.BADGE_DISPLAY_MAX) + "+"
	}
	return BadgeRespond{Count: count, Display: display}
}
