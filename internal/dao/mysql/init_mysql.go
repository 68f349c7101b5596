// Package mysql 提供数据访问层的初始化
// 负责建立 MySQL 连接、自动迁移表结构、初始化 Repository 层
package mysql

import (
	"fmt"

	"campus_msg_server/internal/config"
	"campus_msg_server/internal/dao/mysql/repository"
	"campus_msg_server/internal/model"

	"go.uber.org/zap"
	mysqldriver "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Init 初始化数据库连接并返回 Repository 层实例
// 执行步骤：
//  1. 从配置读取 MySQL 连接信息并构建 DSN
//  2. 建立 GORM 连接（开启 TranslateError，便于识别唯一索引冲突）
//  3. AutoMigrate 自动迁移表结构
//  4. 创建并返回 Repository 实例
func Init() *repository.Repositories {
	conf := config.GetConfig()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		conf.MysqlConfig.User,
		conf.MysqlConfig.Password,
		conf.MysqlConfig.Host,
		conf.MysqlConfig.Port,
		conf.MysqlConfig.DatabaseName,
	)

	// TranslateError: 将底层驱动错误翻译为 gorm.ErrDuplicatedKey 等语义错误
	// 会话按参与者对唯一建索引，两端并发创建时依赖该翻译识别冲突
	db, err := gorm.Open(mysqldriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	// AutoMigrate 自动迁移表结构
	// 表不存在则创建，字段变更则更新，不删除已有字段和数据
	err = db.AutoMigrate(
		&model.UserInfo{},            // 用户信息表
		&model.Conversation{},        // 会话表
		&model.AdminMessage{},        // 会话消息表
		&model.DirectedMessage{},     // 定向消息表
		&model.DirectedMessageRead{}, // 广播已读回执表
		&model.Notice{},              // 学生通知表
		&model.ContentUpdate{},       // 内容更新表
	)
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	return repository.NewRepositories(db)
}
