package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"campus_msg_server/internal/config"
	dao "campus_msg_server/internal/dao/mysql"
	myredis "campus_msg_server/internal/dao/redis"
	"campus_msg_server/internal/handler"
	"campus_msg_server/internal/https_server"
	"campus_msg_server/internal/infrastructure/logger"
	"campus_msg_server/internal/infrastructure/sms"
	"campus_msg_server/internal/service"
	"campus_msg_server/internal/service/live"
	"campus_msg_server/pkg/util/jwt"
	"campus_msg_server/pkg/util/snowflake"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化数据库
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 4. 初始化 Redis
	myredis.Init()
	zap.L().Info("Redis 初始化成功")

	// 5. 初始化 JWT 和雪花节点
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	snowflake.Init()
	zap.L().Info("JWT 与雪花节点初始化成功")

	// 6. 初始化事件分发器
	// channel 模式单机内存分发，kafka 模式支持多实例部署
	if conf.KafkaConfig.EventMode == "kafka" {
		live.GlobalBroker = live.NewKafkaBroker()
	} else {
		live.GlobalBroker = live.NewStandaloneServer()
	}
	zap.L().Info("事件分发器初始化成功", zap.String("mode", conf.KafkaConfig.EventMode))

	// 7. 初始化 SMS Service
	smsService, err := sms.Init(myredis.GetCacheService())
	if err != nil {
		zap.L().Fatal("SMS Service 初始化失败", zap.Error(err))
	}
	zap.L().Info("SMS Service 初始化成功")

	// 8. 初始化 Service 层 (依赖注入)
	service.InitServices(repos, myredis.GetCacheService(), live.GlobalBroker, smsService)
	zap.L().Info("Service 层初始化成功")

	// 9. 初始化 HTTP 服务器
	handlers := handler.NewHandlers(service.Svc)
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("validator 翻译器初始化失败", zap.Error(err))
	}
	engine := https_server.Init(handlers)
	zap.L().Info("HTTP 服务器初始化成功")

	// 10. 启动服务
	go live.GlobalBroker.Start()

	host := conf.MainConfig.Host
	port := conf.MainConfig.Port
	go func() {
		if err := engine.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("关闭服务器...")
	live.GlobalBroker.Close()
	zap.L().Info("服务器已关闭")
}
