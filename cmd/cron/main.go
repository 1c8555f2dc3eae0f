package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kerry-png/clubstand-platform-sub000/internal/biz"
	"github.com/kerry-png/clubstand-platform-sub000/internal/conf"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	klog "github.com/go-kratos/kratos/v2/log"
	"github.com/robfig/cron/v3"
	_ "go.uber.org/automaxprocs"
)

var (
	flagconf string
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
}

// CronApp Cron 应用结构
type CronApp struct {
	billingUsecase *biz.BillingUsecase
}

// newLogger 创建 logger
func newLogger(c *conf.Bootstrap) klog.Logger {
	return klog.With(klog.NewStdLogger(os.Stdout),
		"ts", klog.DefaultTimestamp,
		"caller", klog.DefaultCaller,
		"service.name", "membership-cron",
	)
}

func main() {
	flag.Parse()

	// 初始化配置
	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}

	// 初始化应用
	app, cleanup, err := wireApp(&bc)
	if err != nil {
		panic(err)
	}
	defer cleanup()

	// 创建定时任务调度器（支持秒级调度）
	cronScheduler := cron.New(cron.WithSeconds())

	// 1. 全量家庭对账 - 每天凌晨 2 点执行
	_, err = cronScheduler.AddFunc("0 0 2 * * *", func() {
		log.Println("[CRON] Starting season billing sweep...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		seasonYear := app.billingUsecase.SeasonYear()
		processed, failed, err := app.billingUsecase.RunSeasonSweep(ctx, seasonYear)
		if err != nil {
			log.Printf("[CRON] Error running season sweep: %v", err)
		} else {
			log.Printf("[CRON] Season sweep completed: processed=%d, failed=%d", processed, failed)
			log.Println("[CRON] Finished season billing sweep")
		}
	})
	if err != nil {
		log.Printf("Failed to add season sweep job: %v", err)
	}

	// 2. 关闭超时未支付订单 - 每 10 分钟执行
	_, err = cronScheduler.AddFunc("0 */10 * * * *", func() {
		log.Println("[CRON] Starting expired order cleanup...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		closed, err := app.billingUsecase.CloseExpiredOrders(ctx)
		if err != nil {
			log.Printf("[CRON] Error closing expired orders: %v", err)
		} else {
			log.Printf("[CRON] Closed %d expired orders", closed)
			log.Println("[CRON] Finished expired order cleanup")
		}
	})
	if err != nil {
		log.Printf("Failed to add expired order cleanup job: %v", err)
	}

	// 启动定时任务
	cronScheduler.Start()
	log.Println("========================================")
	log.Println("Cron jobs started successfully")
	log.Println("Scheduled jobs:")
	log.Println("  - Season billing sweep:   Every day at 02:00")
	log.Println("  - Expired order cleanup:  Every 10 minutes")
	log.Println("========================================")

	// 优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gracefully...")

	// 停止定时任务
	ctx := cronScheduler.Stop()
	select {
	case <-ctx.Done():
		log.Println("Cron jobs stopped gracefully")
	case <-time.After(5 * time.Second):
		log.Println("Cron jobs forced to stop after timeout")
	}
}
