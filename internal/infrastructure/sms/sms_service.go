package sms

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi20170525 "github.com/alibabacloud-go/dysmsapi-20170525/v4/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	"go.uber.org/zap"

	"campus_msg_server/internal/config"
	myredis "campus_msg_server/internal/dao/redis"
	"campus_msg_server/pkg/errorx"
	"campus_msg_server/pkg/util/random"
)

// localSmsService 本地 Mock 实现
// 没有配置真实 AK 时使用，只打印不外发，便于本机跑通链路
type localSmsService struct {
	cache myredis.CacheService
}

func (s *localSmsService) SendVerificationCode(telephone string) error {
	key := "auth_code_" + telephone
	code, err := s.cache.Get(context.Background(), key)
	if err != nil {
		zap.L().Error("缓存频率检查异常", zap.Error(err), zap.String("phone", telephone))
		return errorx.ErrServerBusy
	}
	if code != "" {
		return errorx.New(errorx.CodeInvalidParam, "目前还不能发送验证码，请稍后重试或输入已发送的验证码")
	}

	code = strconv.Itoa(random.GetRandomInt(6))
	fmt.Printf("【MockSMS】手机号: %s, 验证码: %s\n", telephone, code)

	if err := s.cache.Set(context.Background(), key, code, time.Minute); err != nil {
		zap.L().Error("缓存写入验证码失败", zap.Error(err))
		return errorx.ErrServerBusy
	}

	return nil
}

func (s *localSmsService) SendNoticeAlert(telephone string, title string) error {
	fmt.Printf("【MockSMS】手机号: %s, 通知提醒: %s\n", telephone, title)
	return nil
}

func shouldUseMock(conf config.SmsConfig) bool {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv("CAMPUSMSG_SMS_MODE")))
	if mode == "mock" || mode == "local" || mode == "test" {
		return true
	}
	// configs/config.toml 默认是占位字符串；没配真实 AK 时默认走 mock
	ak := strings.ToLower(strings.TrimSpace(conf.AccessKeyID))
	ask := strings.ToLower(strings.TrimSpace(conf.AccessKeySecret))
	if ak == "" || ask == "" {
		return true
	}
	if strings.Contains(ak, "your accesskey") || strings.Contains(ask, "your accesskey") {
		return true
	}
	return false
}

// aliyunSmsService 阿里云短信服务实现
type aliyunSmsService struct {
	client *dysmsapi20170525.Client
	cache  myredis.CacheService // 频率限制和验证码存储
}

// Init 初始化阿里云 SMS Client 并创建服务实例
// 未配置真实 AK 时降级为本地 Mock
func Init(cacheService myredis.CacheService) (SmsService, error) {
	smsCfg := config.GetConfig().SmsConfig
	if shouldUseMock(smsCfg) {
		zap.L().Warn("SMS Service 使用本地 Mock 模式（不调用第三方短信）")
		return &localSmsService{cache: cacheService}, nil
	}

	conf := &openapi.Config{
		AccessKeyId:     tea.String(smsCfg.AccessKeyID),
		AccessKeySecret: tea.String(smsCfg.AccessKeySecret),
	}
	conf.Endpoint = tea.String("dysmsapi.aliyuncs.com")
	client, err := dysmsapi20170525.NewClient(conf)
	if err != nil {
		zap.L().Error("Aliyun SMS Client Init Failed", zap.Error(err))
		return nil, err
	}

	return &aliyunSmsService{client: client, cache: cacheService}, nil
}

// NewAliyunSmsService 创建阿里云短信服务实例（用于依赖注入）
func NewAliyunSmsService(client *dysmsapi20170525.Client, cacheService myredis.CacheService) SmsService {
	return &aliyunSmsService{
		client: client,
		cache:  cacheService,
	}
}

// SendVerificationCode 发送验证码
// 包含频率限制检查、验证码生成、缓存预存、API 调用和失败回滚
func (s *aliyunSmsService) SendVerificationCode(telephone string) error {
	if s.client == nil {
		zap.L().Error("短信服务调用失败：smsClient 未初始化")
		return errorx.New(errorx.CodeServerBusy, "短信服务未初始化")
	}

	// 频率限制：同一手机号 1 分钟内只发一次
	key := "auth_code_" + telephone
	code, err := s.cache.Get(context.Background(), key)
	if err != nil {
		zap.L().Error("缓存频率检查异常", zap.Error(err), zap.String("phone", telephone))
		return errorx.ErrServerBusy
	}
	if code != "" {
		return errorx.New(errorx.CodeInvalidParam, "目前还不能发送验证码，请稍后重试或输入已发送的验证码")
	}

	code = strconv.Itoa(random.GetRandomInt(6))

	// 先占位，后发送。反过来在高并发下可能被绕过频率限制
	if err := s.cache.Set(context.Background(), key, code, time.Minute); err != nil {
		zap.L().Error("缓存写入验证码失败", zap.Error(err))
		return errorx.ErrServerBusy
	}

	if err := s.send(telephone, "{\"code\":\""+code+"\"}"); err != nil {
		// 回滚占位 Key，否则用户 1 分钟内无法重试
		_ = s.cache.Delete(context.Background(), key)
		return err
	}

	return nil
}

// SendNoticeAlert 发送通知提醒短信
// 同一手机号 5 分钟内至多提醒一次，避免连续发布通知时轰炸学生
func (s *aliyunSmsService) SendNoticeAlert(telephone string, title string) error {
	if s.client == nil {
		zap.L().Error("短信服务调用失败：smsClient 未初始化")
		return errorx.New(errorx.CodeServerBusy, "短信服务未初始化")
	}

	key := "notice_alert_" + telephone
	last, err := s.cache.Get(context.Background(), key)
	if err != nil {
		zap.L().Error("缓存频率检查异常", zap.Error(err), zap.String("phone", telephone))
		return errorx.ErrServerBusy
	}
	if last != "" {
		zap.L().Info("通知提醒短信被频率限制跳过", zap.String("phone", telephone))
		return nil
	}

	if err := s.cache.Set(context.Background(), key, title, 5*time.Minute); err != nil {
		zap.L().Error("缓存写入提醒标记失败", zap.Error(err))
		return errorx.ErrServerBusy
	}

	if err := s.send(telephone, "{\"title\":\""+title+"\"}"); err != nil {
		_ = s.cache.Delete(context.Background(), key)
		return err
	}

	return nil
}

// send 调用阿里云发送接口
func (s *aliyunSmsService) send(telephone string, templateParam string) error {
	smsCfg := config.GetConfig().SmsConfig
	signName := smsCfg.SignName
	if signName == "" {
		signName = "阿里云短信测试"
	}
	templateCode := smsCfg.TemplateCode
	if templateCode == "" {
		templateCode = "SMS_154950909"
	}

	sendSmsRequest := &dysmsapi20170525.SendSmsRequest{
		SignName:      tea.String(signName),
		TemplateCode:  tea.String(templateCode),
		PhoneNumbers:  tea.String(telephone),
		TemplateParam: tea.String(templateParam),
	}

	runtime := &util.RuntimeOptions{}
	rsp, err := s.client.SendSmsWithOptions(sendSmsRequest, runtime)
	if err != nil {
		zap.L().Error("调用阿里云短信接口发生系统级错误", zap.Error(err))
		return errorx.ErrServerBusy
	}

	// err 为 nil 时也要看 rsp.Body.Code 是否为 "OK"
	zap.L().Info("短信发送接口响应", zap.String("response", *util.ToJSONString(rsp)))

	return nil
}
