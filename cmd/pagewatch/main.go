package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"pagewatch/internal/monitor"
	"pagewatch/pkg/browser"
	"pagewatch/pkg/logger"
)

// chromeRenderer adapts the concrete chromedp renderer to the session
// interface the checker consumes.
type chromeRenderer struct {
	chrome *browser.ChromeRenderer
}

func (r chromeRenderer) NewSession(ctx context.Context) (monitor.Session, error) {
	return r.chrome.NewSession(ctx)
}

func main() {
	appConfig, err := monitor.LoadAppConfig("./.env")
	if err != nil {
		log.Fatal(fmt.Sprintf("load config error: %v", err))
	}

	zapLogger, err := logger.NewLogger(appConfig.LogLevel, appConfig.LogFile)
	if err != nil {
		log.Fatal(fmt.Sprintf("logger setup error: %v", err))
	}
	zapLogger = zapLogger.With(zap.String("service.name", "pagewatch"))
	defer zapLogger.Sync()

	created, err := monitor.EnsureCheckConfig(appConfig.ConfigPath)
	if err != nil {
		zapLogger.Fatal("failed to prepare config file", zap.Error(err))
	}
	if created {
		zapLogger.Warn("config file was missing, a template was created, edit it and run again",
			zap.String("path", appConfig.ConfigPath))
		zapLogger.Sync()
		os.Exit(1)
	}

	checkConfig, err := monitor.LoadCheckConfig(appConfig.ConfigPath)
	if err != nil {
		zapLogger.Fatal("invalid config file", zap.String("path", appConfig.ConfigPath), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checker := monitor.NewLivenessChecker(chromeRenderer{browser.NewChromeRenderer(appConfig.NavTimeout)}, zapLogger)
	notifier := monitor.NewEmailNotifier(monitor.NewSMTPSenderFactory(), zapLogger)
	runner := monitor.NewRunner(checker, notifier, nil, zapLogger)

	outcome := runner.Run(ctx, checkConfig)
	zapLogger.Info("run finished",
		zap.Bool("alive", outcome.Alive),
		zap.Int("attempts", outcome.Attempts),
		zap.Bool("notification_sent", outcome.NotificationSent),
		zap.Error(outcome.NotifyErr))
}
