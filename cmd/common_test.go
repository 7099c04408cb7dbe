package cmd

import (
	"testing"

	"ParallelRealms/internal/shared/logs"
	"ParallelRealms/internal/shared/serverconfig"

	"go.uber.org/zap"
)

func TestReadConfig(t *testing.T) {
	if _, err := serverconfig.Load("", false, nil); err != nil {
		t.Fatalf("期望读到 configs/conf.yml: %v", err)
	}
	conf := serverconfig.Conf
	logCfg := conf.Log
	logCfg.FileDir = ""
	if err := logs.Init("TestReadConfig", logCfg); err != nil {
		t.Fatalf("期望日志初始化成功: %v", err)
	}
	logs.Info("conf", zap.Any("realm", conf.Realm), zap.Any("backend", conf.Backend))

	if conf.Realm.Port == 0 || conf.Backend.Port == 0 {
		t.Fatalf("期望端口已配置")
	}
	if conf.Game.TerritoryRadiusM != 200 {
		t.Fatalf("期望领地半径 200，实际 %v", conf.Game.TerritoryRadiusM)
	}
}
