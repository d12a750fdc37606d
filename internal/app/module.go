package app

import (
	"go.uber.org/fx"

	"screenlog/internal/app/cli"
	"screenlog/internal/app/console"
	"screenlog/internal/app/lifecycle"
	"screenlog/internal/app/logs"
	"screenlog/internal/app/monitor"
	"screenlog/internal/app/pipeline"
	"screenlog/internal/app/remote"
	"screenlog/internal/app/screen"
	"screenlog/internal/app/script"
	"screenlog/internal/app/storage"
	"screenlog/internal/app/watcher"
	"screenlog/internal/app/worker"
	"screenlog/internal/config/logger"
)

var Module = fx.Options(
	logs.Module,
	storage.Module,
	monitor.Module,
	remote.Module,
	screen.Module,
	worker.Module,
	lifecycle.Module,
	script.Module,
	pipeline.Module,
	watcher.Module,
	console.Module,
	cli.Module,
	logger.Module,
	fx.Provide(NewApp),
	fx.Invoke(Register),
)
