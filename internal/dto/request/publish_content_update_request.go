package request

// PublishContentUpdateRequest 发布内容更新请求（测验/课件/项目）
// 使用位置:
//   - internal/handler/content_update_handler.go: PublishUpdate
//   - internal/service/feed/service.go: PublishUpdate
type PublishContentUpdateRequest struct {
	StudentIds  []string `json:"student_ids" binding:"required,min=1"`
	UpdateType  int8     `json:"update_type" binding:"min=0,max=2"`
	Title       string   `json:"title" binding:"required"`
	ReferenceId string   `json:"reference_id"`
}

// MarkUpdateReadRequest 标记内容更新已读请求
// 使用位置:
//   - internal/handler/content_update_handler.go: MarkUpdateRead
//   - internal/service/feed/service.go: MarkUpdateRead
type MarkUpdateReadRequest struct {
	Uuid      string `json:"uuid" binding:"required"`
	StudentId string `json:"student_id" binding:"required"`
}
